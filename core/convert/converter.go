// Package convert implements the Converter interface.
// It turns cleaned HTML into Markdown with html-to-markdown, then hands the
// result to a core.Normalizer so that the converter's column-aligned tables
// come out in tablepad's canonical form.
package convert

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/gaurav-prasanna/tablepad/core"
)

// MarkdownConverter converts HTML to Markdown with canonical tables.
type MarkdownConverter struct {
	conv   *converter.Converter
	tables core.Normalizer
}

// New creates a MarkdownConverter whose table output is passed through tables.
func New(tables core.Normalizer) *MarkdownConverter {
	return &MarkdownConverter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		tables: tables,
	}
}

// Convert converts a cleaned HTML fragment into Markdown.
func (c *MarkdownConverter) Convert(html string) (string, error) {
	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	markdown = c.tables.Normalize(markdown)
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return markdown, nil
}
