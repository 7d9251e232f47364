// Package table — row normalization.
// A row is re-emitted with exactly one space of padding around each cell,
// and separator rows collapse to canonical dash runs.
package table

import (
	"regexp"
	"strings"
)

var (
	// prefixRegex captures leading indentation and block-quote markers.
	// Its space class is a superset of unicode.IsSpace so that nothing
	// strings.TrimSpace would strip is left between prefix and content.
	prefixRegex = regexp.MustCompile(`^[\s\v\x{85}\p{Z}\x{FEFF}]*(?:>+[\s\v\x{85}\p{Z}\x{FEFF}]*)*`)

	separatorRegex = regexp.MustCompile(`^:?-{3,}:?$`)
)

// NormalizeLine rewrites a single table row in canonical form.
// Lines that are not table rows are returned unchanged.
func NormalizeLine(line string) string {
	prefix := prefixRegex.FindString(line)
	trimmed := strings.TrimSpace(line[len(prefix):])

	if !strings.Contains(trimmed, "|") {
		return line
	}
	if !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") {
		return line
	}

	raw := splitCells(trimmed)
	if len(raw) < 3 {
		return line
	}
	// A non-empty tail means the closing pipe was escaped or swallowed by an
	// unterminated span, so the row has no real trailing delimiter.
	if raw[len(raw)-1] != "" {
		return line
	}

	cells := raw[1 : len(raw)-1]
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}

	if isSeparatorRow(cells) {
		for i, cell := range cells {
			cells[i] = canonicalSeparator(cell)
		}
	}

	var b strings.Builder
	b.Grow(len(line) + 2*len(cells))
	b.WriteString(prefix)
	b.WriteByte('|')
	for _, cell := range cells {
		b.WriteString(formatCell(cell))
		b.WriteByte('|')
	}
	return b.String()
}

// isSeparatorRow reports whether every cell is an alignment marker.
func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if !separatorRegex.MatchString(cell) {
			return false
		}
	}
	return true
}

func canonicalSeparator(cell string) string {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return ":---:"
	case left:
		return ":---"
	case right:
		return "---:"
	default:
		return "---"
	}
}

func formatCell(cell string) string {
	if cell == "" {
		return " "
	}
	return " " + cell + " "
}
