package resultset

import "github.com/kailas-cloud/entsearch/internal/domain/entity/item"

// ResultSet is the ranked and highlighted output of one search.
type ResultSet struct {
	items           []item.Item
	unfilteredCount int
}

// New creates a result set. A nil slice is stored as empty.
func New(items []item.Item, unfilteredCount int) ResultSet {
	if items == nil {
		items = []item.Item{}
	}
	return ResultSet{items: items, unfilteredCount: unfilteredCount}
}

// Empty returns a result set with no items and a zero unfiltered count.
func Empty() ResultSet {
	return New(nil, 0)
}

// Items returns the ordered items.
func (r *ResultSet) Items() []item.Item { return r.items }

// Len returns the number of items.
func (r *ResultSet) Len() int { return len(r.items) }

// UnfilteredCount returns the item count across all loaded kinds,
// before the active filter and enabled kinds were applied.
func (r *ResultSet) UnfilteredCount() int { return r.unfilteredCount }
