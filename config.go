package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/htmlindex"
)

type config struct {
	logLevel  string
	logFormat string
	encoding  string
	dump      bool
}

func (c *config) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&c.logLevel, "log-level", "warning", "log level (trace, debug, info, warning, error)")
	flags.StringVar(&c.logFormat, "log-format", "text", "log format (text or json)")
	flags.StringVar(&c.encoding, "encoding", "utf-8", "encoding of the input files (any WHATWG label, e.g. latin1, windows-1252, shift_jis)")
	flags.BoolVar(&c.dump, "dump", false, "dump results as Go values")
}

func (c *config) setupLogging(out io.Writer) error {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return errors.Wrap(err, "config: --log-level")
	}
	switch c.logFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	default:
		return fmt.Errorf("config: unknown --log-format %q", c.logFormat)
	}
	log.SetOutput(out)
	log.SetLevel(level)
	return nil
}

func (c *config) isUTF8() bool {
	switch strings.ToLower(c.encoding) {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}

// open returns the named file ready for scanning. UTF-8 input is scanned
// straight from disk; anything else is transcoded into memory first.
func (c *config) open(path string) (io.ReadSeeker, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if c.isUTF8() {
		return f, f.Close, nil
	}
	defer f.Close()
	data, err := c.decode(f)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	return bytes.NewReader(data), func() error { return nil }, nil
}

// load reads the named file into memory as UTF-8.
func (c *config) load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if c.isUTF8() {
		return io.ReadAll(f)
	}
	data, err := c.decode(f)
	return data, errors.Wrapf(err, "load %s", path)
}

func (c *config) decode(r io.Reader) ([]byte, error) {
	enc, err := htmlindex.Get(c.encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "config: --encoding %q", c.encoding)
	}
	log.WithField("encoding", c.encoding).Debug("Transcoding input to UTF-8")
	return io.ReadAll(enc.NewDecoder().Reader(r))
}

func (c *config) print(w io.Writer, v interface{}) {
	if c.dump {
		spew.Fdump(w, v)
		return
	}
	fmt.Fprintln(w, v)
}
