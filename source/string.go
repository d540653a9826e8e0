package source

import (
	"unicode/utf8"
	"unsafe"

	"github.com/pkg/errors"
)

// String is a static source over the runes of a string. The string is
// assumed to hold valid UTF-8; its Bytes view gives raw byte access.
type String string

// StringBytes is a static source over the raw bytes of a string.
type StringBytes string

var (
	_ StaticSource[int, rune] = String("")
	_ Sliceable[int, string]  = String("")
	_ KnownEnd[int]           = String("")
	_ StaticSource[int, byte] = StringBytes("")
	_ Sliceable[int, []byte]  = StringBytes("")
	_ KnownEnd[int]           = StringBytes("")
)

func (s String) Start() int { return 0 }

func (s String) End() int { return len(s) }

// Bytes returns the raw byte view of s.
func (s String) Bytes() StringBytes { return StringBytes(s) }

// NextAt returns the rune starting at byte offset. An offset inside a
// multi-byte sequence is an error.
func (s String) NextAt(offset int) (int, rune, bool, error) {
	if offset < 0 || offset >= len(s) {
		return offset, 0, false, nil
	}
	if !utf8.RuneStart(s[offset]) {
		return offset, 0, false, errors.Wrapf(ErrInvalidUTF8, "offset %d is not a rune boundary", offset)
	}
	r, width := utf8.DecodeRuneInString(string(s[offset:]))
	return offset + width, r, true, nil
}

func (s String) FullSlice() (string, error) { return string(s), nil }

func (s String) Slice(from, to int) (string, error) {
	if err := checkRange(from, to, len(s)); err != nil {
		return "", err
	}
	if !boundary(string(s), from) || !boundary(string(s), to) {
		return "", errors.Wrapf(ErrInvalidUTF8, "%d..%d splits a rune", from, to)
	}
	return string(s[from:to]), nil
}

func boundary(s string, i int) bool {
	return i == len(s) || utf8.RuneStart(s[i])
}

func (s StringBytes) Start() int { return 0 }

func (s StringBytes) End() int { return len(s) }

func (s StringBytes) NextAt(offset int) (int, byte, bool, error) {
	if offset < 0 || offset >= len(s) {
		return offset, 0, false, nil
	}
	return offset + 1, s[offset], true, nil
}

// FullSlice returns the bytes of s without copying. The result must not be
// modified.
func (s StringBytes) FullSlice() ([]byte, error) { return s.Slice(0, len(s)) }

// Slice returns the bytes of s[from:to] without copying. The result must not
// be modified.
func (s StringBytes) Slice(from, to int) ([]byte, error) {
	if err := checkRange(from, to, len(s)); err != nil {
		return nil, err
	}
	if from == to {
		return []byte{}, nil
	}
	return unsafe.Slice(unsafe.StringData(string(s[from:to])), to-from), nil
}
