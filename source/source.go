// Package source defines the building blocks lexers are written against:
// offset-addressed static sources, cursor-based dynamic sources, and the
// optional bounds and slicing capabilities either kind may carry.
//
//	static:  NextAt(offset) -> (next offset, token)
//	dynamic: Next() -> token, with a single mutable cursor
//
// A static source is lifted into a dynamic one with ToDynamic, and any
// dynamic source gains one token of lookahead with ToPeekable.
package source

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	// ErrInvalidRange is returned when a requested slice is inverted or
	// exceeds the bounds of the source.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidUTF8 is returned when the bytes at an offset are not a
	// valid UTF-8 sequence.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// ErrIncompleteUTF8 is returned when a UTF-8 sequence runs past the
	// available bytes.
	ErrIncompleteUTF8 = errors.New("incomplete UTF-8")
	// ErrUnexpectedEOF is returned when reading past the end of a bounded
	// sequence.
	ErrUnexpectedEOF = errors.New("end of content reached unexpectedly")
	// ErrUnsupported is returned by the capability helpers when no layer
	// of a source provides the requested capability.
	ErrUnsupported = errors.New("capability not supported by source")
)

// Offset is the address type of a source. Any integer works: integers are
// ordered, usable as map keys, convertible to int and closed under + and -.
type Offset interface {
	constraints.Integer
}

// KnownStart is implemented by sources with a known first offset.
type KnownStart[O Offset] interface {
	Start() O
}

// KnownEnd is implemented by sources with a known end offset.
type KnownEnd[O Offset] interface {
	End() O
}

// Sliceable is implemented by sources that can hand out a borrowed view V
// over a range of their content.
type Sliceable[O Offset, V any] interface {
	FullSlice() (V, error)
	Slice(from, to O) (V, error)
}

// Seekable is implemented by sources whose cursor can be repositioned.
type Seekable[O Offset] interface {
	Seek(offset O) error
}

// StaticSource decodes the token at an explicit offset. It holds no cursor:
// calling NextAt twice with the same offset yields the same result.
//
// When there is no token at offset, NextAt returns offset itself and
// ok == false. Out of range offsets are not an error.
type StaticSource[O Offset, T any] interface {
	KnownStart[O]
	NextAt(offset O) (next O, tok T, ok bool, err error)
}

// DynamicSource is a stateful cursor producing tokens one at a time.
type DynamicSource[O Offset, T any] interface {
	KnownStart[O]
	Seekable[O]
	// Position is the raw cursor offset.
	Position() O
	// Traversed reports logical progress. Sources that buffer internally
	// may report something other than Position.
	Traversed() O
	Next() (tok T, ok bool, err error)
}

// Wrapper is implemented by adapters so capabilities of the wrapped source
// can be discovered at runtime.
type Wrapper interface {
	Underlying() any
}

// Must returns v, panicking if err is non-nil. It is meant for callers that
// treat any source failure as fatal.
func Must[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}
