package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olepor/bex/source"
)

// Pair is a rune and the rune that follows it.
type Pair struct {
	Offset  int
	Current rune
	Next    rune
	HasNext bool
}

func (p Pair) String() string {
	if !p.HasNext {
		return fmt.Sprintf("%d\t%q\t<eof>", p.Offset, p.Current)
	}
	return fmt.Sprintf("%d\t%q\t%q", p.Offset, p.Current, p.Next)
}

func newPeekCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "peek FILE",
		Short: "List each rune of a file next to its one-rune lookahead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cfg.load(args[0])
			if err != nil {
				return err
			}
			p := source.ToPeekable[int, rune](source.ToDynamic[int, rune](source.ByteSlice(data).Runes()))
			pairs, err := lookahead(p)
			if err != nil {
				return err
			}
			if cfg.dump {
				cfg.print(cmd.OutOrStdout(), pairs)
				return nil
			}
			for _, pair := range pairs {
				cfg.print(cmd.OutOrStdout(), pair)
			}
			return nil
		},
	}
}

func lookahead(p source.PeekableSource[int, rune]) ([]Pair, error) {
	var pairs []Pair
	for {
		off := p.Position()
		cur, ok, err := p.Next()
		if err != nil {
			return pairs, err
		}
		if !ok {
			return pairs, nil
		}
		_, next, hasNext, err := p.Peek()
		if err != nil {
			return pairs, err
		}
		pairs = append(pairs, Pair{Offset: off, Current: cur, Next: next, HasNext: hasNext})
	}
}
