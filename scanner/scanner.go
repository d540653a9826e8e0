// Package scanner reads UTF-8 text one rune at a time straight from an
// io.ReadSeeker, without buffering the input.
//
// Peek decodes quietly: whatever bytes it reads are given back to the reader
// with a relative seek before it returns, so the reader position only moves
// on Consume, the Take family and the explicit Step/Reset calls.
package scanner

import (
	"io"
	"syscall"
	"unicode/utf8"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/olepor/bex/source"
)

// maxEmptyReads bounds the number of consecutive (0, nil) reads tolerated
// before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

type peekSlot struct {
	r     rune
	width int
	ok    bool // false caches end of stream
}

// Scanner is a rune scanner over a seekable byte stream. It is not safe for
// concurrent use.
type Scanner struct {
	r      io.ReadSeeker
	peeked *peekSlot
	log    log.Ext1FieldLogger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger decode failures and rewinds are reported to.
func WithLogger(l log.Ext1FieldLogger) Option {
	return func(s *Scanner) {
		s.log = l
	}
}

// New returns a Scanner reading from the current position of r.
func New(r io.ReadSeeker, opts ...Option) *Scanner {
	s := &Scanner{r: r, log: log.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Offset returns the byte offset of the underlying reader.
func (s *Scanner) Offset() (int64, error) {
	return s.r.Seek(0, io.SeekCurrent)
}

// Peek returns the next rune without consuming it. ok is false at the end of
// the stream.
func (s *Scanner) Peek() (r rune, ok bool, err error) {
	if p := s.peeked; p != nil {
		return p.r, p.ok, nil
	}
	r, width, err := s.decode(true)
	if err != nil {
		return 0, false, err
	}
	s.peeked = &peekSlot{r: r, width: width, ok: width > 0}
	return r, width > 0, nil
}

// Consume returns the next rune and moves past it.
func (s *Scanner) Consume() (r rune, ok bool, err error) {
	if p := s.peeked; p != nil {
		if p.ok {
			if _, err = s.r.Seek(int64(p.width), io.SeekCurrent); err != nil {
				return 0, false, err
			}
		}
		s.peeked = nil
		return p.r, p.ok, nil
	}
	r, width, err := s.decode(false)
	if err != nil {
		return 0, false, err
	}
	return r, width > 0, nil
}

// MustPeek is Peek, panicking on error.
func (s *Scanner) MustPeek() (rune, bool) {
	r, ok, err := s.Peek()
	if err != nil {
		panic(err)
	}
	return r, ok
}

// MustConsume is Consume, panicking on error.
func (s *Scanner) MustConsume() (rune, bool) {
	r, ok, err := s.Consume()
	if err != nil {
		panic(err)
	}
	return r, ok
}

// StepForward moves the reader one byte forward.
func (s *Scanner) StepForward() error {
	return s.seek(1, io.SeekCurrent)
}

// StepBack moves the reader one byte back.
func (s *Scanner) StepBack() error {
	return s.seek(-1, io.SeekCurrent)
}

// Reset moves the reader to the start of the stream.
func (s *Scanner) Reset() error {
	return s.seek(0, io.SeekStart)
}

func (s *Scanner) seek(offset int64, whence int) error {
	s.peeked = nil
	_, err := s.r.Seek(offset, whence)
	return err
}

// decode reads a single rune. width is 0 at a clean end of stream. When
// quiet is set, the reader is moved back over every byte read, whatever the
// outcome.
func (s *Scanner) decode(quiet bool) (r rune, width int, err error) {
	var buf [utf8.UTFMax]byte
	n := 0
	if quiet {
		defer func() {
			if n == 0 {
				return
			}
			if _, serr := s.r.Seek(-int64(n), io.SeekCurrent); serr != nil && err == nil {
				err = serr
			}
			s.log.Tracef("scanner: rewound %d byte(s)", n)
		}()
	}
	for n < len(buf) {
		b, rerr := s.readByte()
		if rerr == io.EOF {
			if n == 0 {
				return 0, 0, nil
			}
			// A full but invalid prefix can never be completed.
			if utf8.FullRune(buf[:n]) {
				s.log.Debugf("scanner: invalid UTF-8: % x", buf[:n])
				return 0, 0, errors.Wrapf(source.ErrInvalidUTF8, "% x", buf[:n])
			}
			s.log.Debugf("scanner: stream ended inside a rune: % x", buf[:n])
			return 0, 0, errors.Wrapf(source.ErrIncompleteUTF8, "% x", buf[:n])
		}
		if rerr != nil {
			return 0, 0, rerr
		}
		buf[n] = b
		n++
		if utf8.Valid(buf[:n]) {
			r, width = utf8.DecodeRune(buf[:n])
			return r, width, nil
		}
	}
	s.log.Debugf("scanner: invalid UTF-8: % x", buf[:n])
	return 0, 0, errors.Wrapf(source.ErrInvalidUTF8, "% x", buf[:n])
}

// readByte reads exactly one byte, retrying interrupted and empty reads.
func (s *Scanner) readByte() (byte, error) {
	var b [1]byte
	for empty := 0; empty < maxEmptyReads; {
		n, err := s.r.Read(b[:])
		if n == 1 {
			return b[0], nil
		}
		if errors.Is(err, syscall.EINTR) {
			s.log.Trace("scanner: read interrupted, retrying")
			continue
		}
		if err != nil {
			return 0, err
		}
		empty++
	}
	return 0, io.ErrNoProgress
}
