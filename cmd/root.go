// Package cmd wires the guard plugin tooling into a CLI.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "guard",
		Short: "Guard - plugin-driven file watching automation",
		Long: `Guard runs plugins in response to file modifications.

Plugins ship as installed packages named guard-<name>. This tool
discovers them, resolves their types, scaffolds Guardfile entries and
pins resolved versions into a lockfile.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLockCommand())

	return rootCmd
}

func configureLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
