package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olepor/bex/source"
)

// ByteAt is a byte of a file together with its offset.
type ByteAt struct {
	Offset int
	Byte   byte
}

func (b ByteAt) String() string {
	return fmt.Sprintf("%d\t0x%02x", b.Offset, b.Byte)
}

func newBytesCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "bytes FILE",
		Short: "List the bytes of a file with their offsets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cfg.load(args[0])
			if err != nil {
				return err
			}
			bytes, err := walkBytes(source.ToDynamic[int, byte](source.ByteSlice(data)))
			if err != nil {
				return err
			}
			if cfg.dump {
				cfg.print(cmd.OutOrStdout(), bytes)
				return nil
			}
			for _, b := range bytes {
				cfg.print(cmd.OutOrStdout(), b)
			}
			return nil
		},
	}
}

func walkBytes(d source.DynamicSource[int, byte]) ([]ByteAt, error) {
	var out []ByteAt
	for {
		off := d.Position()
		b, ok, err := d.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, ByteAt{Offset: off, Byte: b})
	}
}
