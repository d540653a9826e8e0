package source

import (
	"fmt"

	"github.com/pkg/errors"
)

// Lookahead is a token decoded ahead of the cursor together with the offset
// the cursor moves to once the token is consumed.
type Lookahead[O Offset, T any] struct {
	Next  O
	Token T
	Ok    bool
}

func (l Lookahead[O, T]) String() string {
	if !l.Ok {
		return fmt.Sprintf("<none>@%d", l.Next)
	}
	return fmt.Sprintf("%v@%d", l.Token, l.Next)
}

// PeekableSource is a DynamicSource with one token of lookahead.
type PeekableSource[O Offset, T any] interface {
	DynamicSource[O, T]
	Peek() (next O, tok T, ok bool, err error)
	HasPeeked() bool
	DumpPeeked() (Lookahead[O, T], bool)
}

// Peekable adds one token of lookahead to any DynamicSource.
//
// Interleaving Peek with Next never changes the tokens Next yields nor the
// positions the cursor passes through.
type Peekable[O Offset, T any] struct {
	inner DynamicSource[O, T]
	next  *Lookahead[O, T]
}

var _ PeekableSource[int, byte] = (*Peekable[int, byte])(nil)

// ToPeekable wraps d.
func ToPeekable[O Offset, T any](d DynamicSource[O, T]) *Peekable[O, T] {
	return &Peekable[O, T]{inner: d}
}

func (p *Peekable[O, T]) String() string {
	if p.next == nil {
		return fmt.Sprintf("Peekable(%v)", p.inner)
	}
	return fmt.Sprintf("Peekable(%v, %v)", p.inner, *p.next)
}

func (p *Peekable[O, T]) Underlying() any { return p.inner }

func (p *Peekable[O, T]) Start() O { return p.inner.Start() }

// End reports the end offset of the wrapped source, if it has one.
func (p *Peekable[O, T]) End() (O, bool) { return EndOf[O](p.inner) }

func (p *Peekable[O, T]) Position() O { return p.inner.Position() }

func (p *Peekable[O, T]) Traversed() O { return p.inner.Traversed() }

// Seek drops any lookahead and moves the wrapped cursor.
func (p *Peekable[O, T]) Seek(offset O) error {
	p.next = nil
	return p.inner.Seek(offset)
}

// Peek decodes the next token without moving the cursor. Repeated calls
// return the cached lookahead.
func (p *Peekable[O, T]) Peek() (next O, tok T, ok bool, err error) {
	if p.next != nil {
		return p.next.Next, p.next.Token, p.next.Ok, nil
	}
	start := p.inner.Position()
	defer func() {
		if serr := p.inner.Seek(start); serr != nil {
			p.next = nil
			if err == nil {
				err = errors.Wrapf(serr, "Peekable: Peek: failed to rewind to %d", start)
			}
		}
	}()
	tok, ok, err = p.inner.Next()
	if err != nil {
		return start, tok, false, err
	}
	next = p.inner.Position()
	p.next = &Lookahead[O, T]{Next: next, Token: tok, Ok: ok}
	return next, tok, ok, nil
}

// Next consumes the lookahead if there is one, otherwise decodes from the
// wrapped source.
func (p *Peekable[O, T]) Next() (T, bool, error) {
	la, peeked := p.DumpPeeked()
	if !peeked {
		return p.inner.Next()
	}
	if err := p.inner.Seek(la.Next); err != nil {
		var zero T
		return zero, false, err
	}
	return la.Token, la.Ok, nil
}

func (p *Peekable[O, T]) HasPeeked() bool { return p.next != nil }

// DumpPeeked removes and returns the lookahead.
func (p *Peekable[O, T]) DumpPeeked() (Lookahead[O, T], bool) {
	if p.next == nil {
		return Lookahead[O, T]{}, false
	}
	la := *p.next
	p.next = nil
	return la, true
}
