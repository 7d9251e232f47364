// Package extract implements the Extractor interface.
// It isolates the part of an HTML page worth importing by either:
//  1. Finding the best content container (<main>, <article>, or <body>)
//     after removing noise elements, or
//  2. Collecting only the page's <table> elements.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTables is returned in tables-only mode when a page has no tables.
var ErrNoTables = errors.New("no tables found in HTML")

// noiseSelectors are HTML elements removed before extraction.
// Tables must never be listed here.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "svg", "canvas",
	"iframe", "video", "audio",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLExtractor strips noise from HTML and returns the content fragment.
type HTMLExtractor struct {
	tablesOnly bool
}

// New creates an HTMLExtractor. With tablesOnly set, Extract returns just
// the top-level tables of the page.
func New(tablesOnly bool) *HTMLExtractor {
	return &HTMLExtractor{tablesOnly: tablesOnly}
}

// Extract takes raw HTML and returns a cleaned HTML fragment.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	if e.tablesOnly {
		return extractTables(doc)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return result, nil
}

// extractTables joins the outer HTML of every table that is not nested
// inside another table.
func extractTables(doc *goquery.Document) (string, error) {
	tables := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered("table").Length() == 0
	})
	if tables.Length() == 0 {
		return "", ErrNoTables
	}

	parts := make([]string, 0, tables.Length())
	var err error
	tables.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var html string
		html, err = goquery.OuterHtml(s)
		if err != nil {
			return false
		}
		parts = append(parts, html)
		return true
	})
	if err != nil {
		return "", fmt.Errorf("serializing table: %w", err)
	}

	return strings.Join(parts, "\n"), nil
}
