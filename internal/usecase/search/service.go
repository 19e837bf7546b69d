package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/entsearch/internal/domain"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
	"github.com/kailas-cloud/entsearch/internal/domain/search/query"
	"github.com/kailas-cloud/entsearch/internal/domain/search/resultset"
	"github.com/kailas-cloud/entsearch/internal/logger"
	"github.com/kailas-cloud/entsearch/internal/usecase/normalize"
)

// Sources holds pre-fetched upstream records per kind. A kind without an
// entry has not been loaded and contributes nothing.
type Sources map[kind.Kind][]record.Raw

// Service aggregates, ranks and highlights records of every entity kind.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	adapters    normalize.Registry
	highlighter Highlighter
	observer    Observer
}

// New creates a search service. A nil registry selects normalize.Default().
func New(adapters normalize.Registry) *Service {
	if adapters == nil {
		adapters = normalize.Default()
	}
	return &Service{
		adapters:    adapters,
		highlighter: NewHighlighter(DefaultHighlightTag),
		observer:    nopObserver{},
	}
}

// WithHighlighter sets the markup used for matches.
func (s *Service) WithHighlighter(h Highlighter) *Service {
	s.highlighter = h
	return s
}

// WithObserver sets the instrumentation sink. nil restores the no-op observer.
func (s *Service) WithObserver(o Observer) *Service {
	if o == nil {
		o = nopObserver{}
	}
	s.observer = o
	return s
}

// Search builds the ranked, highlighted result set for q from sources.
// The unfiltered count covers every kind present in sources regardless of
// the filter and enabled kinds, so it is also reported when every selected
// kind is excluded. Empty sources yield an empty result with a zero count.
// The only error is domain.ErrInvalidKind for an unknown active filter,
// returned before any record is normalized.
func (s *Service) Search(ctx context.Context, q query.Query, sources Sources) (resultset.ResultSet, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	filter := q.ActiveFilter()
	if !filter.IsValidFilter() {
		s.observer.SearchRejected()
		return resultset.ResultSet{}, fmt.Errorf("%w: active filter %q", domain.ErrInvalidKind, filter)
	}

	if len(sources) == 0 {
		s.observer.SearchCompleted(filter, 0, time.Since(start))
		return resultset.Empty(), nil
	}

	pattern := Sanitize(strings.TrimSpace(q.Text()))
	byKind, unfiltered := s.normalizeAll(log, sources)

	var items []item.Item
	for _, k := range q.EffectiveKinds() {
		items = append(items, byKind[k]...)
	}
	if len(items) == 0 {
		s.observer.SearchCompleted(filter, 0, time.Since(start))
		return resultset.New(nil, unfiltered), nil
	}
	for i := range items {
		items[i] = items[i].WithSortKey(i)
	}

	m := compile(pattern)
	ranked := rankWith(items, m)
	for i := range ranked {
		ranked[i] = ranked[i].WithHighlight(s.highlighter.apply(m, ranked[i].DisplayName()))
	}

	s.observer.SearchCompleted(filter, len(ranked), time.Since(start))
	log.Debug("search completed",
		zap.String("filter", filter.String()),
		zap.Int("returned", len(ranked)),
		zap.Int("unfiltered", unfiltered),
	)
	return resultset.New(ranked, unfiltered), nil
}

// normalizeAll runs the adapter of every kind present in sources, in
// canonical order, and returns the items per kind with their total count.
func (s *Service) normalizeAll(log *zap.Logger, sources Sources) (map[kind.Kind][]item.Item, int) {
	byKind := make(map[kind.Kind][]item.Item, len(sources))
	total := 0

	for _, k := range kind.Canonical() {
		records, ok := sources[k]
		if !ok {
			continue
		}
		fn, ok := s.adapters.Lookup(k)
		if !ok {
			log.Warn("no adapter for kind", zap.String("kind", k.String()))
			continue
		}
		out := s.runAdapter(log, k, fn, records)
		if len(out.Skipped) > 0 {
			s.observer.RecordsSkipped(k, len(out.Skipped))
			for _, sk := range out.Skipped {
				log.Debug("record skipped",
					zap.String("kind", k.String()),
					zap.Int("index", sk.Index),
					zap.Error(sk.Err),
				)
			}
		}
		byKind[k] = out.Items
		total += len(out.Items)
	}

	for k := range sources {
		if !k.IsValid() {
			log.Warn("ignoring records of unknown kind", zap.String("kind", k.String()))
		}
	}
	return byKind, total
}

// runAdapter isolates a panicking adapter so the other kinds still produce results.
func (s *Service) runAdapter(log *zap.Logger, k kind.Kind, fn normalize.Func, records []record.Raw) (out normalize.Output) {
	defer func() {
		if rvr := recover(); rvr != nil {
			log.Error("adapter panic recovered",
				zap.String("kind", k.String()),
				zap.Any("panic", rvr),
			)
			s.observer.RecordsSkipped(k, len(records))
			out = normalize.Output{}
		}
	}()
	return fn(records)
}
