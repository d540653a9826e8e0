// Package cursor provides a bounds-checked cursor over an in-memory
// sequence, for lexers whose whole input fits in memory.
package cursor

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/olepor/bex/source"
)

// Cursor walks a sequence of comparable elements one at a time.
type Cursor[T comparable] struct {
	pos      int
	contents []T
}

// New returns a Cursor over a copy of contents.
func New[T comparable](contents []T) *Cursor[T] {
	return &Cursor[T]{contents: append([]T(nil), contents...)}
}

// FromString returns a Cursor over the runes of s.
func FromString(s string) *Cursor[rune] {
	return &Cursor[rune]{contents: []rune(s)}
}

func (c *Cursor[T]) String() string {
	return fmt.Sprintf("Cursor{pos: %d, len: %d}", c.pos, len(c.contents))
}

// Contents returns the whole sequence.
func (c *Cursor[T]) Contents() []T { return c.contents }

func (c *Cursor[T]) Pos() int { return c.pos }

func (c *Cursor[T]) Len() int { return len(c.contents) }

// IsEnd reports whether the cursor is at or past the end.
func (c *Cursor[T]) IsEnd() bool { return c.pos >= len(c.contents) }

// Drain returns the sequence and empties the cursor.
func (c *Cursor[T]) Drain() []T {
	contents := c.contents
	c.contents, c.pos = nil, 0
	return contents
}

// SetPos places the cursor at pos. Positions past the end are allowed and
// read as end of content.
func (c *Cursor[T]) SetPos(pos int) error {
	if pos < 0 {
		return errors.Wrapf(source.ErrInvalidRange, "position %d", pos)
	}
	c.pos = pos
	return nil
}

func (c *Cursor[T]) StepBack() error { return c.SetPos(c.pos - 1) }

func (c *Cursor[T]) StepForward() error { return c.SetPos(c.pos + 1) }

func (c *Cursor[T]) Reset() error { return c.SetPos(0) }

// Peek returns the element under the cursor.
func (c *Cursor[T]) Peek() (T, error) {
	if c.IsEnd() {
		var zero T
		return zero, errors.Wrapf(source.ErrUnexpectedEOF, "position %d of %d", c.pos, len(c.contents))
	}
	return c.contents[c.pos], nil
}

// Get returns the element under the cursor and moves past it.
func (c *Cursor[T]) Get() (T, error) {
	v, err := c.Peek()
	if err != nil {
		return v, err
	}
	c.pos++
	return v, nil
}

// Take moves past the element under the cursor if it equals want.
func (c *Cursor[T]) Take(want T) (bool, error) {
	v, err := c.Peek()
	if err != nil {
		return false, err
	}
	if v != want {
		return false, nil
	}
	c.pos++
	return true, nil
}

// TakeMulti takes each of want in order and reports whether all matched.
// Elements matched before a mismatch stay consumed.
func (c *Cursor[T]) TakeMulti(want ...T) (bool, error) {
	for _, w := range want {
		ok, err := c.Take(w)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Range returns contents[from:to] without copying.
func (c *Cursor[T]) Range(from, to int) ([]T, error) {
	return source.Slice[T](c.contents).Slice(from, to)
}
