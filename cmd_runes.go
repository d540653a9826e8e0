package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/olepor/bex/scanner"
)

// RuneAt is a rune read from a file together with its byte offset.
type RuneAt struct {
	Offset int64
	Rune   rune
}

func (r RuneAt) String() string {
	return fmt.Sprintf("%d\t%q", r.Offset, r.Rune)
}

func newRunesCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "runes FILE...",
		Short: "Stream files rune by rune with their byte offsets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([][]RuneAt, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					runes, err := scanRunes(ctx, cfg, path)
					results[i] = runes
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, path := range args {
				if len(args) > 1 {
					fmt.Fprintf(out, "==> %s <==\n", path)
				}
				if cfg.dump {
					cfg.print(out, results[i])
					continue
				}
				var b strings.Builder
				for _, r := range results[i] {
					fmt.Fprintln(&b, r)
				}
				fmt.Fprint(out, b.String())
			}
			return nil
		},
	}
}

// scanRunes decodes every rune of the file at path with its own Scanner.
func scanRunes(ctx context.Context, cfg *config, path string) ([]RuneAt, error) {
	r, closeFn, err := cfg.open(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	logger := log.WithField("file", path)
	s := scanner.New(r, scanner.WithLogger(logger))
	var runes []RuneAt
	for {
		if err := ctx.Err(); err != nil {
			return runes, err
		}
		off, err := s.Offset()
		if err != nil {
			return runes, err
		}
		c, ok, err := s.Consume()
		if err != nil {
			return runes, errors.Wrapf(err, "%s: offset %d", path, off)
		}
		if !ok {
			logger.WithField("runes", len(runes)).Debug("Reached end of file")
			return runes, nil
		}
		runes = append(runes, RuneAt{Offset: off, Rune: c})
	}
}
