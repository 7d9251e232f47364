// Package core defines the interfaces shared by tablepad's stages.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// Status describes what a normalization pass did to a document.
type Status string

const (
	// StatusUnchanged means the document was already canonical.
	StatusUnchanged Status = "unchanged"
	// StatusNormalized means the document was rewritten.
	StatusNormalized Status = "normalized"
	// StatusPending means a dry run found changes that were not written.
	StatusPending Status = "pending"
	// StatusSkipped means the document was not processed.
	StatusSkipped Status = "skipped"
)

// Result holds the outcome of normalizing a single document.
type Result struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`

	// Original and Normalized are only populated when the text changed.
	Original   string `json:"-"`
	Normalized string `json:"-"`
}

// Changed reports whether normalization produced different text.
func (r Result) Changed() bool {
	return r.Status == StatusNormalized || r.Status == StatusPending
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	Source     string
	StatusCode int
	HTML       string
}

// Store is the document store tablepad normalizes in place.
// Document IDs are slash-separated paths relative to the store root.
type Store interface {
	// List returns the IDs of all markdown documents, in a stable order.
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, id string) (string, error)
	Write(ctx context.Context, id string, text string) error
	// IsMarkdown reports whether id is a markdown-kind document.
	IsMarkdown(id string) bool
}

// Normalizer rewrites the pipe-tables of a Markdown document in canonical form.
type Normalizer interface {
	Normalize(markdown string) string
}

// Fetcher retrieves raw HTML from a URL or local file.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Converter converts cleaned HTML into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
