// Package store — document naming.
// Imported pages are stored under a flat ID derived from their source,
// e.g. https://example.com/docs/intro → example_com_docs_intro.md.
package store

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// IDFromSource derives a document ID from a URL or local file path.
func IDFromSource(source string) string {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		base := filepath.Base(source)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return sanitize(base) + ".md"
	}

	parts := []string{sanitize(parsed.Host)}
	p := strings.Trim(parsed.Path, "/")
	if p != "" {
		p = strings.TrimSuffix(p, path.Ext(p))
		for _, seg := range strings.Split(p, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_") + ".md"
}

// sanitize replaces anything but ASCII letters, digits and hyphens with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
