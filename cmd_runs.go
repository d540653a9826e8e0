package main

import (
	"github.com/spf13/cobra"
)

func newRunsCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "runs FILE",
		Short: "Split a file into runs of letters, digits, space and symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := cfg.load(args[0])
			if err != nil {
				return err
			}
			runs, err := lexRuns(data)
			if err != nil {
				return err
			}
			if cfg.dump {
				cfg.print(cmd.OutOrStdout(), runs)
				return nil
			}
			for _, r := range runs {
				cfg.print(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
}
