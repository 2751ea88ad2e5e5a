package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/matcher/internal/logger"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "matcher",
	Short: "Memory matching game for the terminal",
	Long: `Matcher is a memory game played in the terminal. It fetches random images
from the imgur gallery, deals each one twice face down, and lets you flip two
cards at a time until every pair has been found.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func newLogger() *logger.Logger {
	return logger.New(os.Stderr, verbose)
}
