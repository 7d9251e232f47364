package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/tablepad/core/process"
	"github.com/gaurav-prasanna/tablepad/core/report"
	"github.com/gaurav-prasanna/tablepad/core/store"
)

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	flagDir, flagInclude, flagVerbose = ".", store.DefaultInclude, false
	flagOnly, flagAll, flagCheck, flagDiff = false, false, false, false
	flagFormat = string(report.FormatText)
	flagInitial, flagTablesOnly, flagName, flagForce = false, false, "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDocumentID(t *testing.T) {
	dir := t.TempDir()

	id, err := documentID(dir, filepath.Join(dir, "notes", "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "notes/a.md", id)

	_, err = documentID(dir, filepath.Join(dir, "..", "a.md"))
	assert.ErrorIs(t, err, store.ErrOutsideStore)
}

func TestValidateNormalizeFlags(t *testing.T) {
	flagOnly, flagAll = true, true
	assert.Error(t, validateNormalizeFlags(nil))

	flagOnly, flagAll = false, true
	assert.NoError(t, validateNormalizeFlags(nil))
	assert.Error(t, validateNormalizeFlags([]string{"a.md"}))

	flagOnly, flagAll = false, false
	assert.Error(t, validateNormalizeFlags(nil))
	assert.NoError(t, validateNormalizeFlags([]string{"a.md"}))
}

func TestNormalizeSingleDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes", "a.md")
	other := filepath.Join(dir, "b.md")
	writeFile(t, doc, "|a|b|\n|--|---|\n")
	writeFile(t, other, "|c|\n")

	out, err := execute(t, "normalize", "--dir", dir, doc)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Normalized: notes/a.md")
	assert.Equal(t, "| a | b |\n| -- | --- |\n", readFile(t, doc))
	assert.Equal(t, "|c|\n", readFile(t, other))
}

func TestNormalizeNonMarkdownIsNoop(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "notes.txt")
	writeFile(t, doc, "|a|")

	out, err := execute(t, "normalize", "--dir", dir, doc)
	require.NoError(t, err)
	assert.Contains(t, out, "1 skipped")
	assert.Equal(t, "|a|", readFile(t, doc))
}

func TestNormalizeAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "|a|")
	writeFile(t, filepath.Join(dir, "sub", "b.md"), "```\n|b|\n```")
	writeFile(t, filepath.Join(dir, "sub", "c.md"), "> |:-:|\n")

	out, err := execute(t, "normalize", "--all", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "3 documents: 2 normalized, 0 pending, 1 unchanged, 0 skipped")
	assert.Equal(t, "| a |", readFile(t, filepath.Join(dir, "a.md")))
	assert.Equal(t, "```\n|b|\n```", readFile(t, filepath.Join(dir, "sub", "b.md")))
	assert.Equal(t, "> | :-: |\n", readFile(t, filepath.Join(dir, "sub", "c.md")))
}

func TestNormalizeCheck(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "a.md")
	writeFile(t, doc, "|a|\n")

	out, err := execute(t, "normalize", "--all", "--check", "--diff", "--dir", dir)
	assert.ErrorIs(t, err, process.ErrChangesRequired)
	assert.Contains(t, out, "✗ Needs normalization: a.md")
	assert.Contains(t, out, "+| a |")
	assert.Equal(t, "|a|\n", readFile(t, doc))

	writeFile(t, doc, "| a |\n")
	_, err = execute(t, "normalize", "--all", "--check", "--dir", dir)
	assert.NoError(t, err)
}

func TestNormalizeRejectsBadFormat(t *testing.T) {
	_, err := execute(t, "normalize", "--all", "--format", "xml", "--dir", t.TempDir())
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestImportLocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "report.html")
	writeFile(t, src, `<html><body><p>intro</p>
<table><thead><tr><th>Region</th><th>Revenue</th></tr></thead>
<tbody><tr><td>north</td><td>1200</td></tr></tbody></table>
</body></html>`)

	out, err := execute(t, "import", "--dir", dir, "--tables-only", src)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Written: report.md")

	md := readFile(t, filepath.Join(dir, "report.md"))
	assert.Contains(t, md, "| Region | Revenue |\n")
	assert.Contains(t, md, "| north | 1200 |\n")
	assert.NotContains(t, md, "intro")

	_, err = execute(t, "import", "--dir", dir, src)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "import", "--dir", dir, "--force", src)
	assert.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, "report.md")), "intro")
}
