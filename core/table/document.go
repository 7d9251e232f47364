// Package table — document normalization.
// Walks a document line by line, skipping fenced code blocks.
package table

import "strings"

type fenceMarker int

const (
	fenceNone fenceMarker = iota
	fenceBacktick
	fenceTilde
)

// prefix returns the opening run that identifies the fence family.
func (m fenceMarker) prefix() string {
	switch m {
	case fenceBacktick:
		return "```"
	case fenceTilde:
		return "~~~"
	default:
		return ""
	}
}

// fenceOf reports which fence family, if any, a trimmed line opens.
func fenceOf(trimmed string) fenceMarker {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return fenceBacktick
	case strings.HasPrefix(trimmed, "~~~"):
		return fenceTilde
	default:
		return fenceNone
	}
}

// NormalizeDocument normalizes every table row in text outside fenced
// code blocks. Lines may end in \n or \r\n; the result always uses \n
// and carries no trailing carriage returns.
//
// A fence closes on any run of its own family, whatever the length.
// NormalizeDocument is idempotent.
func NormalizeDocument(text string) string {
	lines := strings.Split(text, "\n")
	fence := fenceNone

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		lines[i] = line

		trimmed := strings.TrimSpace(line)
		if m := fenceOf(trimmed); m != fenceNone {
			if fence == fenceNone {
				fence = m
			} else if strings.HasPrefix(trimmed, fence.prefix()) {
				fence = fenceNone
			}
			continue
		}
		if fence != fenceNone {
			continue
		}

		lines[i] = NormalizeLine(line)
	}

	return strings.Join(lines, "\n")
}

// Normalizer adapts NormalizeDocument to the core.Normalizer interface.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize returns markdown with its tables in canonical form.
func (n *Normalizer) Normalize(markdown string) string {
	return NormalizeDocument(markdown)
}
