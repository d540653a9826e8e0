package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/olepor/bex/source"
)

func newSpanCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "span FILE FROM TO",
		Short: "Print the text between two byte offsets of a file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(err, "span: FROM")
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.Wrap(err, "span: TO")
			}
			data, err := cfg.load(args[0])
			if err != nil {
				return err
			}
			text, err := span(source.ToDynamic[int, rune](source.ByteSlice(data).Runes()), from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

// span slices [from, to) out of src, clamping to the end of src when src
// knows where it ends.
func span(src source.DynamicSource[int, rune], from, to int) (string, error) {
	if end, ok := source.EndOf[int](src); ok && to > end {
		to = end
	}
	return source.SliceOf[string](src, from, to)
}
