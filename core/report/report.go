// Package report prints the outcome of a normalization run.
// The text report lists changed documents with coloured marks and optional
// unified diffs; the JSON report carries per-document status and a summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diff "github.com/shogoki/gotextdiff"

	"github.com/gaurav-prasanna/tablepad/core"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text or json)", s)
	}
}

// Options controls what a report includes.
type Options struct {
	Format Format
	// Diff includes a unified diff for every changed document.
	Diff bool
	// Verbose lists unchanged and skipped documents too.
	Verbose bool
}

// Summary counts results by status.
type Summary struct {
	Total      int `json:"total"`
	Normalized int `json:"normalized"`
	Pending    int `json:"pending"`
	Unchanged  int `json:"unchanged"`
	Skipped    int `json:"skipped"`
}

// Summarize tallies results.
func Summarize(results []core.Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case core.StatusNormalized:
			s.Normalized++
		case core.StatusPending:
			s.Pending++
		case core.StatusUnchanged:
			s.Unchanged++
		case core.StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

var (
	okColor      = color.New(color.FgGreen)
	pendingColor = color.New(color.FgYellow)
	skipColor    = color.New(color.Faint)
	addLine      = color.New(color.FgGreen)
	delLine      = color.New(color.FgRed)
)

// Write renders results to w.
func Write(w io.Writer, results []core.Result, opts Options) error {
	if opts.Format == FormatJSON {
		return writeJSON(w, results, opts)
	}
	return writeText(w, results, opts)
}

func writeText(w io.Writer, results []core.Result, opts Options) error {
	okMark := okColor.Sprint("✓")
	pendingMark := pendingColor.Sprint("✗")
	skipMark := skipColor.Sprint("-")

	for _, r := range results {
		var err error
		switch r.Status {
		case core.StatusNormalized:
			_, err = fmt.Fprintf(w, "%s Normalized: %s\n", okMark, r.ID)
		case core.StatusPending:
			_, err = fmt.Fprintf(w, "%s Needs normalization: %s\n", pendingMark, r.ID)
		case core.StatusUnchanged:
			if opts.Verbose {
				_, err = fmt.Fprintf(w, "%s Unchanged: %s\n", skipMark, r.ID)
			}
		case core.StatusSkipped:
			if opts.Verbose {
				_, err = fmt.Fprintf(w, "%s Skipped: %s (%s)\n", skipMark, r.ID, r.Reason)
			}
		}
		if err != nil {
			return err
		}

		if opts.Diff && r.Changed() {
			if err := writeColoredDiff(w, unifiedDiff(r)); err != nil {
				return err
			}
		}
	}

	s := Summarize(results)
	_, err := fmt.Fprintf(w, "%d %s: %d normalized, %d pending, %d unchanged, %d skipped\n",
		s.Total, plural(s.Total, "document", "documents"), s.Normalized, s.Pending, s.Unchanged, s.Skipped)
	return err
}

// jsonResult adds the optional diff to a result.
type jsonResult struct {
	core.Result
	Diff string `json:"diff,omitempty"`
}

type jsonReport struct {
	Results []jsonResult `json:"results"`
	Summary Summary      `json:"summary"`
}

func writeJSON(w io.Writer, results []core.Result, opts Options) error {
	out := jsonReport{
		Results: make([]jsonResult, 0, len(results)),
		Summary: Summarize(results),
	}
	for _, r := range results {
		jr := jsonResult{Result: r}
		if opts.Diff && r.Changed() {
			jr.Diff = unifiedDiff(r)
		}
		out.Results = append(out.Results, jr)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// unifiedDiff returns the diff between a result's original and normalized text.
func unifiedDiff(r core.Result) string {
	return string(diff.Diff(r.ID, []byte(r.Original), r.ID, []byte(r.Normalized)))
}

func writeColoredDiff(w io.Writer, text string) error {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = io.WriteString(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = addLine.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = delLine.Fprint(w, line)
		default:
			_, err = io.WriteString(w, line)
		}
		if err != nil {
			return err
		}
	}
	if !strings.HasSuffix(text, "\n") && text != "" {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
