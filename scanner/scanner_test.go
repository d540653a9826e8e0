package scanner

import (
	"io"
	"strings"
	"syscall"
	"testing"
	"unicode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olepor/bex/source"
)

// countingReader counts calls to Read.
type countingReader struct {
	io.ReadSeeker
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.ReadSeeker.Read(p)
}

// flakyReader interrupts two reads out of three: once with EINTR and once
// with an empty read.
type flakyReader struct {
	io.ReadSeeker
	calls int
}

func (f *flakyReader) Read(p []byte) (int, error) {
	f.calls++
	switch f.calls % 3 {
	case 1:
		return 0, syscall.EINTR
	case 2:
		return 0, nil
	}
	return f.ReadSeeker.Read(p)
}

type stuckReader struct{ io.ReadSeeker }

func (stuckReader) Read([]byte) (int, error) { return 0, nil }

type brokenReader struct {
	io.ReadSeeker
	err error
}

func (b brokenReader) Read([]byte) (int, error) { return 0, b.err }

func offset(t *testing.T, s *Scanner) int64 {
	t.Helper()
	off, err := s.Offset()
	require.NoError(t, err)
	return off
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := New(strings.NewReader("héllo"))
	for i := 0; i < 3; i++ {
		r, ok, err := s.Peek()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 'h', r)
		assert.Equal(t, int64(0), offset(t, s))
	}
}

func TestPeekIsCached(t *testing.T) {
	cr := &countingReader{ReadSeeker: strings.NewReader("日本")}
	s := New(cr)
	_, _, err := s.Peek()
	require.NoError(t, err)
	reads := cr.reads
	assert.Equal(t, 3, reads, "one read per byte of the rune")

	_, _, err = s.Peek()
	require.NoError(t, err)
	assert.Equal(t, reads, cr.reads)

	r, ok, err := s.Consume()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, '日', r)
	assert.Equal(t, reads, cr.reads, "consuming a peeked rune does not decode again")
	assert.Equal(t, int64(3), offset(t, s))
}

func TestConsumeAll(t *testing.T) {
	text := "a€𝄞ü z"
	s := New(strings.NewReader(text))
	var got []rune
	for {
		r, ok, err := s.Consume()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []rune(text), got)
	assert.Equal(t, int64(len(text)), offset(t, s))

	r, ok, err := s.Consume()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, r)
}

func TestPeekEndOfStream(t *testing.T) {
	s := New(strings.NewReader(""))
	_, ok, err := s.Peek()
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Consume()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), offset(t, s))
}

func TestTakeWhileChar(t *testing.T) {
	s := New(strings.NewReader("aaab"))
	n, err := s.TakeWhileChar('a')
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	r, ok, err := s.Peek()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 'b', r)
	assert.Equal(t, int64(3), offset(t, s))
}

func TestTakeUntil(t *testing.T) {
	s := New(strings.NewReader("ünïcode 42"))
	n, err := s.TakeUntil(unicode.IsSpace)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, int64(len("ünïcode")), offset(t, s))

	n, err = s.TakeUntilChar('2')
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.TakeWhile(unicode.IsDigit)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.TakeWhile(func(rune) bool { return true })
	require.NoError(t, err)
	assert.Zero(t, n, "nothing left")
}

func TestTake(t *testing.T) {
	s := New(strings.NewReader("xy"))
	ok, err := s.Take('y')
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), offset(t, s))

	ok, err = s.Take('x')
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), offset(t, s))
}

func TestTakeMulti(t *testing.T) {
	s := New(strings.NewReader("abcd"))
	ok, err := s.TakeMulti("abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), offset(t, s))
}

func TestTakeMultiKeepsPartialMatch(t *testing.T) {
	s := New(strings.NewReader("abd"))
	ok, err := s.TakeMulti("abc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(2), offset(t, s), "the matched prefix stays consumed")

	r, _, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'd', r)
}

func TestStepInvalidatesPeek(t *testing.T) {
	s := New(strings.NewReader("abc"))
	r, _, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	require.NoError(t, s.StepForward())
	r, _, err = s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'b', r)

	require.NoError(t, s.StepBack())
	r, _, err = s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	_, _, err = s.Consume()
	require.NoError(t, err)
	_, _, err = s.Consume()
	require.NoError(t, err)
	require.NoError(t, s.Reset())
	assert.Equal(t, int64(0), offset(t, s))
	r, _, err = s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
}

func TestInvalidUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     error
		consumed int64
	}{
		{"sole 0xff", "\xff", source.ErrInvalidUTF8, 1},
		{"0xf8 then text", "\xf8abc", source.ErrInvalidUTF8, 4},
		{"bad continuation at end", "\xc3a", source.ErrInvalidUTF8, 2},
		{"truncated two-byte", "\xc3", source.ErrIncompleteUTF8, 1},
		{"truncated four-byte", "\xf0\x9f\x8c", source.ErrIncompleteUTF8, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/peek", func(t *testing.T) {
			s := New(strings.NewReader(tt.input))
			_, ok, err := s.Peek()
			assert.Equal(t, tt.want, errors.Cause(err))
			assert.False(t, ok)
			assert.Equal(t, int64(0), offset(t, s), "a quiet decode restores the reader on failure")
		})
		t.Run(tt.name+"/consume", func(t *testing.T) {
			s := New(strings.NewReader(tt.input))
			_, _, err := s.Consume()
			assert.Equal(t, tt.want, errors.Cause(err))
			assert.Equal(t, tt.consumed, offset(t, s))
		})
	}
}

func TestInterruptedReads(t *testing.T) {
	s := New(&flakyReader{ReadSeeker: strings.NewReader("añ")})
	r, ok, err := s.Peek()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	_, _, err = s.Consume()
	require.NoError(t, err)
	r, _, err = s.Consume()
	require.NoError(t, err)
	assert.Equal(t, 'ñ', r)

	_, ok, err = s.Consume()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoProgress(t *testing.T) {
	s := New(stuckReader{strings.NewReader("a")})
	_, _, err := s.Peek()
	assert.Equal(t, io.ErrNoProgress, err)
}

func TestReaderErrorSurfacesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	s := New(brokenReader{ReadSeeker: strings.NewReader("a"), err: boom})
	_, _, err := s.Peek()
	assert.Equal(t, boom, err)
	_, _, err = s.Consume()
	assert.Equal(t, boom, err)
}

func TestMust(t *testing.T) {
	s := New(strings.NewReader("z\xff"))
	r, ok := s.MustPeek()
	assert.True(t, ok)
	assert.Equal(t, 'z', r)
	r, _ = s.MustConsume()
	assert.Equal(t, 'z', r)
	assert.Panics(t, func() { s.MustConsume() })
}

func TestLogsDecodeFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.TraceLevel)
	s := New(strings.NewReader("\xff"), WithLogger(logger))

	_, _, err := s.Peek()
	require.Error(t, err)

	var levels []log.Level
	for _, e := range hook.AllEntries() {
		levels = append(levels, e.Level)
	}
	assert.Contains(t, levels, log.DebugLevel)
	assert.Contains(t, levels, log.TraceLevel, "the rewind is traced")
}
