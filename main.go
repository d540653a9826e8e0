package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	cfg := &config{}
	rootCmd := &cobra.Command{
		Use:           "bex",
		Short:         "Inspect text the way a bex-based lexer sees it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.setupLogging(cmd.ErrOrStderr())
		},
	}
	cfg.bindFlags(rootCmd)

	rootCmd.AddCommand(newRunesCmd(cfg))
	rootCmd.AddCommand(newBytesCmd(cfg))
	rootCmd.AddCommand(newPeekCmd(cfg))
	rootCmd.AddCommand(newSpanCmd(cfg))
	rootCmd.AddCommand(newRunsCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
