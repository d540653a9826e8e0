package source

import "fmt"

// Dynamic turns a StaticSource into a DynamicSource by pairing it with a
// cursor.
type Dynamic[O Offset, T any] struct {
	inner StaticSource[O, T]
	index O
}

var _ DynamicSource[int, rune] = (*Dynamic[int, rune])(nil)

// ToDynamic wraps s with a cursor at s.Start().
func ToDynamic[O Offset, T any](s StaticSource[O, T]) *Dynamic[O, T] {
	return ToDynamicAt(s, s.Start())
}

// ToDynamicAt wraps s with a cursor at index.
func ToDynamicAt[O Offset, T any](s StaticSource[O, T], index O) *Dynamic[O, T] {
	return &Dynamic[O, T]{inner: s, index: index}
}

func (d *Dynamic[O, T]) String() string {
	return fmt.Sprintf("Dynamic(%T)@%d", d.inner, d.index)
}

// Inner returns the wrapped static source.
func (d *Dynamic[O, T]) Inner() StaticSource[O, T] { return d.inner }

func (d *Dynamic[O, T]) Underlying() any { return d.inner }

func (d *Dynamic[O, T]) Start() O { return d.inner.Start() }

// End reports the end offset of the wrapped source, if it has one.
func (d *Dynamic[O, T]) End() (O, bool) { return EndOf[O](d.inner) }

func (d *Dynamic[O, T]) Position() O { return d.index }

func (d *Dynamic[O, T]) Traversed() O { return d.index }

// Seek moves the cursor. The offset is not validated; a bad offset shows up
// on the next decode.
func (d *Dynamic[O, T]) Seek(offset O) error {
	d.index = offset
	return nil
}

// Next decodes the token at the cursor and moves the cursor to the offset
// the static source reported, whether or not a token was produced.
func (d *Dynamic[O, T]) Next() (T, bool, error) {
	next, tok, ok, err := d.inner.NextAt(d.index)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if err = d.Seek(next); err != nil {
		var zero T
		return zero, false, err
	}
	return tok, ok, nil
}
