package table_test

import (
	"testing"

	"github.com/gaurav-prasanna/tablepad/core/table"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "simple row", line: "|a|b|", want: "| a | b |"},
		{name: "already canonical", line: "| a | b |", want: "| a | b |"},
		{name: "extra padding", line: "|   alpha   |  b |", want: "| alpha | b |"},
		{name: "empty cell", line: "|a||c|", want: "| a | | c |"},
		{name: "whitespace-only cell", line: "|a|   |c|", want: "| a | | c |"},
		{name: "separator alignments", line: "| :---|---: |", want: "| :--- | ---: |"},
		{name: "short aligned dashes are data", line: "| :--|---: |", want: "| :-- | ---: |"},
		{name: "separator all forms", line: "|:-----:|:---|----:|-------|", want: "| :---: | :--- | ---: | --- |"},
		{name: "separator with spacing", line: "|  ---   |   :----:  |", want: "| --- | :---: |"},
		{name: "short dashes are data", line: "|--|---|", want: "| -- | --- |"},
		{name: "mixed separator and text", line: "|---|abc|", want: "| --- | abc |"},
		{name: "code span pipe", line: "|`a|b`|c|", want: "| `a|b` | c |"},
		{name: "wikilink pipe", line: "|[[x|y]]|z|", want: "| [[x|y]] | z |"},
		{name: "escaped pipe", line: `|a\|b|c|`, want: `| a\|b | c |`},
		{name: "blockquote prefix", line: "> |a|b|", want: "> | a | b |"},
		{name: "nested blockquote prefix", line: "  > > |a|b|", want: "  > > | a | b |"},
		{name: "indent prefix", line: "    |a|", want: "    | a |"},
		{name: "no-break space prefix", line: "\u00a0|a|", want: "\u00a0| a |"},
		{name: "vertical tab prefix", line: "\v> \u3000|a|", want: "\v> \u3000| a |"},
		{name: "trailing whitespace", line: "|a|b|   ", want: "| a | b |"},
		{name: "not a table", line: "not a table", want: "not a table"},
		{name: "pipe in prose", line: "a | b", want: "a | b"},
		{name: "missing trailing pipe", line: "|a|b", want: "|a|b"},
		{name: "missing leading pipe", line: "a|b|", want: "a|b|"},
		{name: "lone pipe", line: "|", want: "|"},
		{name: "two pipes", line: "||", want: "| |"},
		{name: "escaped trailing pipe", line: `|a|b\|`, want: `|a|b\|`},
		{name: "unterminated code", line: "|a|`b|", want: "|a|`b|"},
		{name: "unterminated wikilink", line: "|a|[[b|", want: "|a|[[b|"},
		{name: "empty line", line: "", want: ""},
		{name: "blank line", line: "   ", want: "   "},
		{name: "blockquote only", line: "> quoted text", want: "> quoted text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.NormalizeLine(tt.line))
		})
	}
}
