package query

import (
	"fmt"

	"github.com/kailas-cloud/entsearch/internal/domain"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
)

// MaxTextLength is the maximum accepted query text length in bytes.
const MaxTextLength = 512

// Query is the input to one search invocation.
type Query struct {
	text         string
	activeFilter kind.Kind
	enabledKinds kind.Set
}

// New validates query parameters. An empty filter means kind.All and a nil
// enabled set means every kind.
func New(text string, activeFilter kind.Kind, enabled kind.Set) (Query, error) {
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: text too long (max %d bytes)", domain.ErrInvalidQuery, MaxTextLength)
	}
	if activeFilter == "" {
		activeFilter = kind.All
	}
	if !activeFilter.IsValidFilter() {
		return Query{}, fmt.Errorf("%w: %q", domain.ErrInvalidKind, activeFilter)
	}
	if enabled == nil {
		enabled = kind.AllKinds()
	}
	for k := range enabled {
		if !k.IsValid() {
			return Query{}, fmt.Errorf("%w: enabled kind %q", domain.ErrInvalidKind, k)
		}
	}
	return Query{text: text, activeFilter: activeFilter, enabledKinds: enabled}, nil
}

// Reconstruct builds a query without validation. Search still rejects an
// unknown active filter.
func Reconstruct(text string, activeFilter kind.Kind, enabled kind.Set) Query {
	return Query{text: text, activeFilter: activeFilter, enabledKinds: enabled}
}

// Text returns the raw user input.
func (q *Query) Text() string { return q.text }

// ActiveFilter returns the selected kind or kind.All. An unset filter is kind.All.
func (q *Query) ActiveFilter() kind.Kind {
	if q.activeFilter == "" {
		return kind.All
	}
	return q.activeFilter
}

// EnabledKinds returns the kinds searched when the filter is kind.All.
func (q *Query) EnabledKinds() kind.Set { return q.enabledKinds }

// EffectiveKinds returns the kinds to aggregate, in canonical order.
func (q *Query) EffectiveKinds() []kind.Kind {
	if f := q.ActiveFilter(); f != kind.All {
		return []kind.Kind{f}
	}
	return q.enabledKinds.Kinds()
}
