// Package table canonicalises Markdown pipe-tables.
// This file implements the cell splitter, which breaks a row into raw
// cells while honouring escaped pipes, wikilinks, and code spans.
package table

import "strings"

// splitCells splits a trimmed table row on its delimiter pipes.
//
// A pipe is not a delimiter when it is escaped (\|), inside a [[wikilink]],
// or inside a code span. Code spans open on a backtick run and close only on
// a run of the same length. Unterminated spans extend to the end of the line.
// The result always has one more element than the number of delimiters.
func splitCells(line string) []string {
	var (
		cells      []string
		current    strings.Builder
		inWikilink bool
		inCode     bool
		codeTicks  int
	)

	for i := 0; i < len(line); {
		ch := line[i]
		var next byte
		if i+1 < len(line) {
			next = line[i+1]
		}

		switch {
		case !inCode && !inWikilink && ch == '\\' && next == '|':
			current.WriteString(`\|`)
			i += 2

		case !inCode && ch == '[' && next == '[':
			inWikilink = true
			current.WriteString("[[")
			i += 2

		case inWikilink && ch == ']' && next == ']':
			inWikilink = false
			current.WriteString("]]")
			i += 2

		case !inWikilink && ch == '`':
			ticks := backtickRun(line, i)
			current.WriteString(line[i : i+ticks])
			i += ticks
			if !inCode {
				inCode = true
				codeTicks = ticks
			} else if ticks == codeTicks {
				inCode = false
				codeTicks = 0
			}

		case !inCode && !inWikilink && ch == '|':
			cells = append(cells, current.String())
			current.Reset()
			i++

		default:
			current.WriteByte(ch)
			i++
		}
	}

	return append(cells, current.String())
}

// backtickRun counts consecutive backticks starting at line[start].
func backtickRun(line string, start int) int {
	n := 0
	for start+n < len(line) && line[start+n] == '`' {
		n++
	}
	return n
}
