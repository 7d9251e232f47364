// Package process runs read → normalize → write cycles against a store.
//
// A Processor tracks the documents it is currently rewriting so that a
// write which triggers its own change notification, or two overlapping
// requests for the same document, never produce a second concurrent pass.
// Bulk runs are strictly sequential to bound load on the store.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gaurav-prasanna/tablepad/core"
)

// ErrChangesRequired is returned by callers in check mode when at least
// one document is not in canonical form.
var ErrChangesRequired = errors.New("table normalization changes required")

// Options configures a Processor.
type Options struct {
	// DryRun computes results without writing anything back.
	DryRun bool
	Logger *slog.Logger
}

// Processor normalizes documents held in a core.Store.
type Processor struct {
	store      core.Store
	normalizer core.Normalizer
	dryRun     bool
	logger     *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Processor.
func New(store core.Store, normalizer core.Normalizer, opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{
		store:      store,
		normalizer: normalizer,
		dryRun:     opts.DryRun,
		logger:     logger,
		inFlight:   make(map[string]struct{}),
	}
}

// IsMarkdown reports whether the store treats id as a markdown document.
func (p *Processor) IsMarkdown(id string) bool {
	return p.store.IsMarkdown(id)
}

// NormalizeDocument normalizes a single document and writes it back if the
// text changed. Non-markdown documents and documents already being
// processed are skipped. A cancelled ctx returns its error before the
// document is read. Store errors are returned as-is after the in-flight
// mark is cleared.
func (p *Processor) NormalizeDocument(ctx context.Context, id string) (core.Result, error) {
	if !p.store.IsMarkdown(id) {
		p.logger.Debug("skipping non-markdown document", "id", id)
		return core.Result{ID: id, Status: core.StatusSkipped, Reason: "not markdown"}, nil
	}
	if err := ctx.Err(); err != nil {
		return core.Result{ID: id}, err
	}
	if !p.acquire(id) {
		p.logger.Debug("skipping document already in flight", "id", id)
		return core.Result{ID: id, Status: core.StatusSkipped, Reason: "in progress"}, nil
	}
	defer p.release(id)

	text, err := p.store.Read(ctx, id)
	if err != nil {
		return core.Result{ID: id}, err
	}

	normalized := p.normalizer.Normalize(text)
	if normalized == text {
		return core.Result{ID: id, Status: core.StatusUnchanged}, nil
	}

	res := core.Result{
		ID:         id,
		Status:     core.StatusPending,
		Original:   text,
		Normalized: normalized,
	}
	if p.dryRun {
		return res, nil
	}

	if err := p.store.Write(ctx, id, normalized); err != nil {
		return core.Result{ID: id}, err
	}
	p.logger.Debug("normalized document", "id", id)
	res.Status = core.StatusNormalized
	return res, nil
}

// NormalizeAll normalizes every markdown document in the store, one at a
// time. It stops at the first failure and returns the results gathered so
// far together with the error.
func (p *Processor) NormalizeAll(ctx context.Context) ([]core.Result, error) {
	ids, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]core.Result, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := p.NormalizeDocument(ctx, id)
		if err != nil {
			return results, fmt.Errorf("normalizing %s: %w", id, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Processor) acquire(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inFlight[id]; busy {
		return false
	}
	p.inFlight[id] = struct{}{}
	return true
}

func (p *Processor) release(id string) {
	p.mu.Lock()
	delete(p.inFlight, id)
	p.mu.Unlock()
}
