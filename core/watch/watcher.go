// Package watch re-normalizes documents as they are written.
// It turns fsnotify events under the store root into document IDs and
// hands them to a Handler one at a time.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/tablepad/core"
)

// Handler normalizes a single document. *process.Processor satisfies it.
type Handler interface {
	IsMarkdown(id string) bool
	NormalizeDocument(ctx context.Context, id string) (core.Result, error)
}

// Watcher feeds filesystem change notifications to a Handler.
type Watcher struct {
	root    string
	handler Handler
	logger  *slog.Logger

	// OnResult, if set, is called after every handled document.
	OnResult func(core.Result, error)
}

// New creates a Watcher for the directory tree at root.
func New(root string, handler Handler, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{root: root, handler: handler, logger: logger}
}

// Run watches until ctx is cancelled. Events are handled sequentially;
// a document that fails to normalize is logged and the watch continues.
// No document is handled after cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return fmt.Errorf("resolving watch root: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, root); err != nil {
		return err
	}
	w.logger.Info("watching for changes", "root", root)

	ids := make(chan string, 64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ids)
		for {
			select {
			case <-gctx.Done():
				return nil
			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				w.logger.Warn("watch error", "error", err)
			case ev, ok := <-fw.Events:
				if !ok {
					return nil
				}
				id, ok := w.documentID(fw, root, ev)
				if !ok {
					continue
				}
				select {
				case ids <- id:
				case <-gctx.Done():
					return nil
				}
			}
		}
	})

	g.Go(func() error {
		for id := range ids {
			// Buffered ids are dropped once the watch is cancelled.
			if gctx.Err() != nil {
				return nil
			}
			res, err := w.handler.NormalizeDocument(gctx, id)
			if err != nil {
				w.logger.Error("normalizing document failed", "id", id, "error", err)
			} else if res.Changed() {
				w.logger.Info("normalized document", "id", id)
			}
			if w.OnResult != nil {
				w.OnResult(res, err)
			}
		}
		return nil
	})

	return g.Wait()
}

// documentID maps an event to a markdown document ID. Newly created
// directories are added to the watch list as a side effect.
func (w *Watcher) documentID(fw *fsnotify.Watcher, root string, ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}

	rel, err := filepath.Rel(root, ev.Name)
	if err != nil || !filepath.IsLocal(rel) || hidden(rel) {
		return "", false
	}

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addTree(fw, ev.Name); err != nil {
				w.logger.Warn("watching new directory failed", "dir", rel, "error", err)
			}
			return "", false
		}
	}

	id := filepath.ToSlash(rel)
	if !w.handler.IsMarkdown(id) {
		return "", false
	}
	w.logger.Debug("change detected", "id", id, "op", ev.Op.String())
	return id, true
}

// addTree registers dir and every non-hidden directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		return nil
	})
}

// hidden reports whether any element of a relative path starts with a dot.
func hidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
