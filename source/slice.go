package source

import (
	"unicode/utf8"
	"unsafe"

	"github.com/pkg/errors"
)

// Slice is a static source over the elements of a slice.
type Slice[T comparable] []T

var (
	_ StaticSource[int, byte] = Slice[byte](nil)
	_ KnownEnd[int]           = Slice[byte](nil)
	_ Sliceable[int, []byte]  = Slice[byte](nil)
	_ StaticSource[int, byte] = ByteSlice(nil)
	_ Sliceable[int, []byte]  = ByteSlice(nil)
	_ StaticSource[int, rune] = ByteRunes(nil)
	_ Sliceable[int, string]  = ByteRunes(nil)
	_ KnownEnd[int]           = ByteRunes(nil)
)

func (s Slice[T]) Start() int { return 0 }

func (s Slice[T]) End() int { return len(s) }

func (s Slice[T]) NextAt(offset int) (int, T, bool, error) {
	if offset < 0 || offset >= len(s) {
		var zero T
		return offset, zero, false, nil
	}
	return offset + 1, s[offset], true, nil
}

func (s Slice[T]) FullSlice() ([]T, error) { return s, nil }

// Slice returns s[from:to] without copying.
func (s Slice[T]) Slice(from, to int) ([]T, error) {
	if err := checkRange(from, to, len(s)); err != nil {
		return nil, err
	}
	return s[from:to], nil
}

func checkRange(from, to, length int) error {
	if from < 0 || from > to || to > length {
		return errors.Wrapf(ErrInvalidRange, "%d..%d of %d", from, to, length)
	}
	return nil
}

// ByteSlice is a static source over raw bytes. Its Runes view decodes the
// same bytes as UTF-8.
type ByteSlice []byte

func (b ByteSlice) Start() int { return 0 }

func (b ByteSlice) End() int { return len(b) }

func (b ByteSlice) NextAt(offset int) (int, byte, bool, error) {
	return Slice[byte](b).NextAt(offset)
}

func (b ByteSlice) FullSlice() ([]byte, error) { return b, nil }

func (b ByteSlice) Slice(from, to int) ([]byte, error) {
	return Slice[byte](b).Slice(from, to)
}

// Runes returns the UTF-8 view of b. Both share the same backing array.
func (b ByteSlice) Runes() ByteRunes { return ByteRunes(b) }

// ByteRunes is a static source decoding UTF-8 runes from a byte slice.
// Offsets are byte offsets.
type ByteRunes []byte

func (b ByteRunes) Start() int { return 0 }

func (b ByteRunes) End() int { return len(b) }

// Bytes returns the raw byte view of b.
func (b ByteRunes) Bytes() ByteSlice { return ByteSlice(b) }

// NextAt decodes the rune starting at offset. The lead byte decides how
// many bytes are examined; the decoded rune decides how far to advance.
func (b ByteRunes) NextAt(offset int) (int, rune, bool, error) {
	if offset < 0 || offset >= len(b) {
		return offset, 0, false, nil
	}
	width, err := Classify(b[offset])
	if err != nil {
		return offset, 0, false, errors.Wrapf(err, "rune at %d", offset)
	}
	end := offset + width
	if end > len(b) {
		return offset, 0, false, errors.Wrapf(ErrIncompleteUTF8, "rune at %d needs %d bytes, %d left", offset, width, len(b)-offset)
	}
	window := b[offset:end]
	if !utf8.Valid(window) {
		return offset, 0, false, errors.Wrapf(ErrInvalidUTF8, "rune at %d: % x", offset, []byte(window))
	}
	r, _ := utf8.DecodeRune(window)
	return offset + utf8.RuneLen(r), r, true, nil
}

func (b ByteRunes) FullSlice() (string, error) { return b.Slice(0, len(b)) }

// Slice returns b[from:to] as a string, failing if those bytes are not
// valid UTF-8. The string shares memory with b, which must not be modified
// while the string is in use.
func (b ByteRunes) Slice(from, to int) (string, error) {
	if err := checkRange(from, to, len(b)); err != nil {
		return "", err
	}
	if !utf8.Valid(b[from:to]) {
		return "", errors.Wrapf(ErrInvalidUTF8, "%d..%d", from, to)
	}
	if from == to {
		return "", nil
	}
	return unsafe.String(&b[from], to-from), nil
}

// Classify returns the length of the UTF-8 sequence introduced by lead:
//
//	< 128 -> 1, < 224 -> 2, < 240 -> 3, < 248 -> 4
//
// Anything else is not a lead byte.
func Classify(lead byte) (int, error) {
	switch {
	case lead < 128:
		return 1, nil
	case lead < 224:
		return 2, nil
	case lead < 240:
		return 3, nil
	case lead < 248:
		return 4, nil
	}
	return 0, errors.Wrapf(ErrInvalidUTF8, "lead byte %#x", lead)
}
