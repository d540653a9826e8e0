package main

import (
	"bytes"
	"fmt"
	"unicode"

	"github.com/olepor/bex/scanner"
	"github.com/olepor/bex/source"
)

// TokenType classifies a run of runes.
type TokenType int

const (
	Letters TokenType = iota
	Digits
	Space
	Symbols
)

func (t TokenType) String() string {
	switch t {
	case Letters:
		return "Letters"
	case Digits:
		return "Digits"
	case Space:
		return "Space"
	case Symbols:
		return "Symbols"
	default:
		return "Unknown"
	}
}

// Run is a maximal stretch of runes of one TokenType, addressed by byte
// offsets.
type Run struct {
	Type  TokenType
	Start int64
	End   int64
	Text  string
}

func (r Run) String() string {
	return fmt.Sprintf("%d-%d\t%s\t%q", r.Start, r.End, r.Type, r.Text)
}

// runLexer splits UTF-8 text into runs. The scanner does the decoding and
// the text source hands out the lexemes once their spans are known.
type runLexer struct {
	s     *scanner.Scanner
	text  source.ByteRunes
	start int64
	runs  []Run
}

// stateFn represents the state of the lexer as a function that returns the
// next state.
type stateFn func(*runLexer) (stateFn, error)

func lexRuns(data []byte) ([]Run, error) {
	l := &runLexer{
		s:    scanner.New(bytes.NewReader(data)),
		text: source.ByteSlice(data).Runes(),
	}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.runs, nil
}

// run lexes the input by executing state functions until the state is nil.
func (l *runLexer) run() error {
	for state := stateFn(lexStart); state != nil; {
		var err error
		if state, err = state(l); err != nil {
			return err
		}
	}
	return nil
}

func (l *runLexer) emit(t TokenType) error {
	end, err := l.s.Offset()
	if err != nil {
		return err
	}
	text, err := l.text.Slice(int(l.start), int(end))
	if err != nil {
		return err
	}
	l.runs = append(l.runs, Run{Type: t, Start: l.start, End: end, Text: text})
	l.start = end
	return nil
}

func lexStart(l *runLexer) (stateFn, error) {
	r, ok, err := l.s.Peek()
	if err != nil || !ok {
		return nil, err
	}
	switch {
	case unicode.IsLetter(r):
		return lexClass(Letters, unicode.IsLetter), nil
	case unicode.IsDigit(r):
		return lexClass(Digits, unicode.IsDigit), nil
	case unicode.IsSpace(r):
		return lexClass(Space, unicode.IsSpace), nil
	}
	return lexClass(Symbols, isSymbol), nil
}

func lexClass(t TokenType, in func(rune) bool) stateFn {
	return func(l *runLexer) (stateFn, error) {
		if _, err := l.s.TakeWhile(in); err != nil {
			return nil, err
		}
		return lexStart, l.emit(t)
	}
}

func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
