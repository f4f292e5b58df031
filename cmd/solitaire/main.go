// Command solitaire bundles the greedy solver, dataset tooling, the
// difficulty batch job, and the win-ingest HTTP service.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amsibert-fmms/Solitaire/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "solitaire",
	Short:         "Klondike solver, dataset tools, and win-ingest service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	}
}
