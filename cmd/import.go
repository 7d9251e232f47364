// Package cmd — import command.
// Orchestrates fetch → extract → convert → write for an HTML page, so the
// page's tables land in the store already in canonical form.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/tablepad/core"
	"github.com/gaurav-prasanna/tablepad/core/convert"
	"github.com/gaurav-prasanna/tablepad/core/extract"
	"github.com/gaurav-prasanna/tablepad/core/fetch"
	"github.com/gaurav-prasanna/tablepad/core/store"
	"github.com/gaurav-prasanna/tablepad/core/table"
)

var (
	flagTablesOnly bool
	flagName       string
	flagForce      bool
)

var importCmd = &cobra.Command{
	Use:   "import <url|file>",
	Short: "Import an HTML page into the store as Markdown",
	Long: `Import fetches an HTML page (over HTTP or from a local file), extracts its main
content or only its tables, converts it to Markdown and writes it into the store
with normalized tables.

Examples:
  tablepad import https://example.com/pricing
  tablepad import report.html --tables-only --name reports/q3.md`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&flagTablesOnly, "tables-only", false, "Import only the page's tables")
	importCmd.Flags().StringVar(&flagName, "name", "", "Document ID to write (default: derived from the source)")
	importCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing document")
}

func runImport(cmd *cobra.Command, args []string) error {
	source := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}

	id := flagName
	if id == "" {
		id = store.IDFromSource(source)
	}
	exists, err := st.Exists(id)
	if err != nil {
		return err
	}
	if exists && !flagForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", id)
	}

	markdown, err := processSource(cmd.Context(), source,
		fetch.New(nil), extract.New(flagTablesOnly), convert.New(table.New()))
	if err != nil {
		return err
	}

	if err := st.Write(cmd.Context(), id, markdown); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", id)
	return nil
}

// processSource runs a single source through the import pipeline.
func processSource(
	ctx context.Context,
	source string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	converter core.Converter,
) (string, error) {
	// 1. Fetch
	result, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract content or tables
	content, err := extractor.Extract(result.HTML)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}

	// 3. Convert to Markdown with canonical tables
	markdown, err := converter.Convert(content)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	return markdown, nil
}
