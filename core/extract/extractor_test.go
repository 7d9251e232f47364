package extract_test

import (
	"strings"
	"testing"

	"github.com/gaurav-prasanna/tablepad/core/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<nav><a href="/">Home</a></nav>
<main>
  <p>Quarterly figures</p>
  <table id="outer"><tr><td><table id="inner"><tr><td>x</td></tr></table></td></tr></table>
  <script>track()</script>
</main>
<footer>© 2026</footer>
<table id="second"><tr><td>y</td></tr></table>
</body></html>`

func TestExtractMainContent(t *testing.T) {
	out, err := extract.New(false).Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, "<main>")
	assert.Contains(t, out, "Quarterly figures")
	assert.Contains(t, out, `id="outer"`)
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "track()")
	assert.NotContains(t, out, `id="second"`)
}

func TestExtractTablesOnly(t *testing.T) {
	out, err := extract.New(true).Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, `id="outer"`)
	assert.Contains(t, out, `id="inner"`)
	assert.Contains(t, out, `id="second"`)
	assert.NotContains(t, out, "Quarterly figures")
	assert.Equal(t, 1, strings.Count(out, `id="inner"`), "nested table must not be emitted twice")
}

func TestExtractTablesOnlyNoTables(t *testing.T) {
	_, err := extract.New(true).Extract("<p>nothing here</p>")
	assert.ErrorIs(t, err, extract.ErrNoTables)
}
