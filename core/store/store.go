// Package store implements core.Store on top of an afero filesystem.
// Document IDs are slash-separated paths relative to the store root, and
// "markdown kind" is defined by a doublestar include pattern.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultInclude matches every .md file at any depth.
const DefaultInclude = "**/*.md"

var (
	// ErrOutsideStore is returned for IDs that escape the store root.
	ErrOutsideStore = errors.New("path is outside the document store")
	// ErrNotMarkdown is returned when writing a document that the include
	// pattern does not match.
	ErrNotMarkdown = errors.New("not a markdown document")
)

// FSStore is a document store backed by a directory tree.
type FSStore struct {
	fs      afero.Fs
	include string
}

// New creates an FSStore over fs. An empty include uses DefaultInclude.
func New(fs afero.Fs, include string) (*FSStore, error) {
	if include == "" {
		include = DefaultInclude
	}
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("invalid include pattern %q", include)
	}
	return &FSStore{fs: fs, include: include}, nil
}

// NewOS creates an FSStore rooted at dir on the local filesystem.
// If dir is empty, it defaults to the current working directory.
func NewOS(dir string, include string) (*FSStore, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening store: %s is not a directory", dir)
	}

	return New(afero.NewBasePathFs(afero.NewOsFs(), dir), include)
}

// IsMarkdown reports whether id matches the include pattern.
func (s *FSStore) IsMarkdown(id string) bool {
	ok, err := doublestar.Match(s.include, id)
	return err == nil && ok
}

// List walks the store and returns the sorted IDs of all markdown documents.
// Hidden files and directories (e.g. .git, .obsidian) are skipped.
func (s *FSStore) List(ctx context.Context) ([]string, error) {
	var ids []string

	err := afero.Walk(s.fs, ".", func(p string, info os.FileInfo, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return err
		}

		if p != "." && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}

		id := filepath.ToSlash(p)
		if s.IsMarkdown(id) {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// Read returns the full text of a document.
func (s *FSStore) Read(ctx context.Context, id string) (string, error) {
	name, err := s.resolve(id)
	if err != nil {
		return "", err
	}

	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", id, err)
	}
	return string(data), nil
}

// Write overwrites a document, creating parent directories as needed.
func (s *FSStore) Write(ctx context.Context, id string, text string) error {
	name, err := s.resolve(id)
	if err != nil {
		return err
	}
	if !s.IsMarkdown(id) {
		return fmt.Errorf("writing %s: %w", id, ErrNotMarkdown)
	}

	perm := os.FileMode(0644)
	if info, err := s.fs.Stat(name); err == nil {
		perm = info.Mode().Perm()
	}

	if dir := filepath.Dir(name); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, name, []byte(text), perm); err != nil {
		return fmt.Errorf("writing %s: %w", id, err)
	}
	return nil
}

// Exists reports whether a document with the given ID is present.
func (s *FSStore) Exists(id string) (bool, error) {
	name, err := s.resolve(id)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, name)
}

// resolve validates id and converts it to a filesystem path.
func (s *FSStore) resolve(id string) (string, error) {
	clean := path.Clean(id)
	if id == "" || !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", fmt.Errorf("%q: %w", id, ErrOutsideStore)
	}
	return filepath.FromSlash(clean), nil
}
