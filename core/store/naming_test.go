package store_test

import (
	"testing"

	"github.com/gaurav-prasanna/tablepad/core/store"
	"github.com/stretchr/testify/assert"
)

func TestIDFromSource(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://example.com", "example_com.md"},
		{"https://example.com/", "example_com.md"},
		{"https://example.com/docs/intro", "example_com_docs_intro.md"},
		{"https://example.com/docs/intro.html", "example_com_docs_intro.md"},
		{"http://localhost:8080/a-b/c", "localhost_8080_a-b_c.md"},
		{"pages/report.html", "report.md"},
		{"/tmp/Q3 figures.htm", "Q3_figures.md"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, store.IDFromSource(tt.source))
		})
	}
}
