// Package cmd implements the CLI commands for tablepad using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/tablepad/core/store"
)

// Persistent flag variables.
var (
	flagDir     string
	flagInclude string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tablepad",
	Short: "tablepad — canonical cell padding for Markdown pipe-tables",
	Long: `tablepad rewrites the pipe-tables in a tree of Markdown documents so every
cell carries exactly one space of padding and separator rows use the canonical
---, :---, ---: and :---: markers. Fenced code blocks are never touched.

Usage:
  tablepad normalize <file> [flags]
  tablepad normalize --all [flags]
  tablepad watch [flags]
  tablepad import <url|file> [flags]`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "Root directory of the document store")
	rootCmd.PersistentFlags().StringVar(&flagInclude, "include", store.DefaultInclude, "Glob pattern selecting markdown documents")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output and list unchanged documents")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the diagnostics logger for a command run.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openStore opens the document store selected by --dir and --include.
func openStore() (*store.FSStore, error) {
	s, err := store.NewOS(flagDir, flagInclude)
	if err != nil {
		return nil, fmt.Errorf("initializing document store: %w", err)
	}
	return s, nil
}
