// Package entsearch merges company, person, story and topic records into
// one relevance-ranked, highlighted result list.
//
// Search is a pure function of its inputs: it keeps no state between calls
// and is safe for concurrent use. Callers re-run it on every query change.
package entsearch

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/search/query"
	"github.com/kailas-cloud/entsearch/internal/logger"
	"github.com/kailas-cloud/entsearch/internal/usecase/normalize"
	searchuc "github.com/kailas-cloud/entsearch/internal/usecase/search"
)

// Observer receives search instrumentation.
type Observer = searchuc.Observer

var tagPattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Engine runs searches.
type Engine struct {
	svc    *searchuc.Service
	logger *zap.Logger
}

// New creates an Engine with the built-in adapters for every kind.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{highlightTag: searchuc.DefaultHighlightTag}
	for _, o := range opts {
		o(cfg)
	}

	if !tagPattern.MatchString(cfg.highlightTag) {
		return nil, fmt.Errorf("entsearch: invalid highlight tag %q", cfg.highlightTag)
	}

	svc := searchuc.New(normalize.Default()).
		WithHighlighter(searchuc.NewHighlighter(cfg.highlightTag)).
		WithObserver(cfg.observer)

	return &Engine{svc: svc, logger: cfg.logger}, nil
}

// Search ranks and highlights the records in sources for q.
// It fails only with ErrInvalidKind, before any record is processed.
func (e *Engine) Search(ctx context.Context, q Query, sources Sources) (ResultSet, error) {
	if e.logger != nil && !logger.InContext(ctx) {
		ctx = logger.ContextWithLogger(ctx, e.logger)
	}

	internal := query.Reconstruct(q.Text, q.Filter, enabledSet(q.Enabled))

	// Sources and searchuc.Sources share an underlying type.
	rs, err := e.svc.Search(ctx, internal, searchuc.Sources(sources))
	if err != nil {
		return ResultSet{}, fmt.Errorf("entsearch: %w", err)
	}

	out := ResultSet{Items: make([]Item, 0, rs.Len()), UnfilteredCount: rs.UnfilteredCount()}
	for _, it := range rs.Items() {
		out.Items = append(out.Items, Item{
			ID:              it.ID(),
			Kind:            it.Kind(),
			DisplayName:     it.DisplayName(),
			HighlightedName: it.HighlightedName(),
			Subtitle:        it.Subtitle(),
			IconRef:         it.IconRef(),
		})
	}
	return out, nil
}

// Sanitize escapes regular expression metacharacters in raw.
func Sanitize(raw string) string { return searchuc.Sanitize(raw) }

// Highlight escapes name and wraps every case-insensitive match of the
// literal text in <mark> elements.
func Highlight(name, text string) string {
	return searchuc.Highlight(name, searchuc.Sanitize(text))
}

func enabledSet(kinds []Kind) kind.Set {
	if kinds == nil {
		return kind.AllKinds()
	}
	return kind.NewSet(kinds...)
}
