// Package cmd — watch command.
// Keeps a store normalized by re-normalizing documents as they are written.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/tablepad/core"
	"github.com/gaurav-prasanna/tablepad/core/process"
	"github.com/gaurav-prasanna/tablepad/core/table"
	"github.com/gaurav-prasanna/tablepad/core/watch"
)

var flagInitial bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Normalize markdown documents whenever they are written",
	Long: `Watch monitors the store directory tree and normalizes each markdown document
after it is created or modified. Press Ctrl-C to stop.

Examples:
  tablepad watch --dir ~/vault
  tablepad watch --initial`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&flagInitial, "initial", false, "Normalize every markdown document before watching")
}

func runWatch(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	logger := newLogger()
	proc := process.New(st, table.New(), process.Options{Logger: logger})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagInitial {
		results, err := proc.NormalizeAll(ctx)
		if err != nil {
			return err
		}
		for _, res := range results {
			if res.Changed() {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Normalized: %s\n", res.ID)
			}
		}
	}

	w := watch.New(flagDir, proc, logger)
	w.OnResult = func(res core.Result, err error) {
		if err == nil && res.Changed() {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Normalized: %s\n", res.ID)
		}
	}
	return w.Run(ctx)
}
