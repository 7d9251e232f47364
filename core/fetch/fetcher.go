// Package fetch implements the Fetcher interface.
// Sources with an http or https scheme are fetched over HTTP; anything else
// is read as a local file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/tablepad/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tablepad/1.0 (https://github.com/gaurav-prasanna/tablepad)"

	// maxBodySize caps how much of a page is read into memory.
	maxBodySize = 32 << 20
)

// SourceFetcher fetches HTML pages over HTTP or from disk.
type SourceFetcher struct {
	client *http.Client
	fs     afero.Fs
}

// New creates a SourceFetcher with a sensible timeout that reads local
// sources from fs. A nil fs means the OS filesystem.
func New(fs afero.Fs) *SourceFetcher {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &SourceFetcher{
		client: &http.Client{Timeout: defaultTimeout},
		fs:     fs,
	}
}

// IsRemote reports whether source should be fetched over HTTP.
func IsRemote(source string) bool {
	u, err := url.Parse(source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch retrieves the HTML content of source.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	if !IsRemote(source) {
		return f.readFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, source)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:     source,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}

func (f *SourceFetcher) readFile(path string) (*core.FetchResult, error) {
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &core.FetchResult{Source: path, HTML: string(data)}, nil
}
