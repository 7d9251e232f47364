// Package cmd — normalize command.
// Normalizes one document (--only, the default) or every markdown document
// in the store (--all), one at a time: read → normalize → write if changed.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/tablepad/core"
	"github.com/gaurav-prasanna/tablepad/core/process"
	"github.com/gaurav-prasanna/tablepad/core/report"
	"github.com/gaurav-prasanna/tablepad/core/store"
	"github.com/gaurav-prasanna/tablepad/core/table"
)

// Flag variables.
var (
	flagOnly   bool
	flagAll    bool
	flagCheck  bool
	flagDiff   bool
	flagFormat string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize the tables of one document or of every markdown document",
	Long: `Normalize rewrites pipe-tables in canonical form. Documents are only written
when their text actually changes.

Examples:
  tablepad normalize notes/meeting.md
  tablepad normalize --all --dir ~/vault
  tablepad normalize --all --check --diff
  tablepad normalize --all --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	// Mode flags.
	normalizeCmd.Flags().BoolVar(&flagOnly, "only", false, "Normalize only the given document (default)")
	normalizeCmd.Flags().BoolVar(&flagAll, "all", false, "Normalize every markdown document in the store")

	// Output flags.
	normalizeCmd.Flags().BoolVar(&flagCheck, "check", false, "Report documents that would change without writing them; exit non-zero if any")
	normalizeCmd.Flags().BoolVar(&flagDiff, "diff", false, "Print a unified diff for every changed document")
	normalizeCmd.Flags().StringVar(&flagFormat, "format", string(report.FormatText), "Report format (text|json)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if err := validateNormalizeFlags(args); err != nil {
		return err
	}
	format, err := report.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	proc := process.New(st, table.New(), process.Options{
		DryRun: flagCheck,
		Logger: newLogger(),
	})

	ctx := cmd.Context()
	var results []core.Result
	if flagAll {
		results, err = proc.NormalizeAll(ctx)
	} else {
		results, err = runOnly(ctx, proc, args[0])
	}

	// Report whatever was processed before a failure.
	opts := report.Options{Format: format, Diff: flagDiff, Verbose: flagVerbose}
	if werr := report.Write(cmd.OutOrStdout(), results, opts); werr != nil && err == nil {
		err = werr
	}
	if err != nil {
		return err
	}

	if flagCheck && report.Summarize(results).Pending > 0 {
		return process.ErrChangesRequired
	}
	return nil
}

// runOnly normalizes the single document named by path.
func runOnly(ctx context.Context, proc *process.Processor, path string) ([]core.Result, error) {
	id, err := documentID(flagDir, path)
	if err != nil {
		return nil, err
	}

	res, err := proc.NormalizeDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s: %w", id, err)
	}
	return []core.Result{res}, nil
}

// documentID converts a path given on the command line into a store ID
// relative to dir.
func documentID(dir, path string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%s: %w", path, store.ErrOutsideStore)
	}
	return filepath.ToSlash(rel), nil
}

// validateNormalizeFlags checks mode flags against the arguments.
func validateNormalizeFlags(args []string) error {
	if flagOnly && flagAll {
		return errors.New("--only and --all are mutually exclusive")
	}
	if flagAll && len(args) > 0 {
		return errors.New("--all does not take a document argument")
	}
	if !flagAll && len(args) == 0 {
		return errors.New("a document is required (or use --all)")
	}
	return nil
}
