package item

import "github.com/kailas-cloud/entsearch/internal/domain/entity/kind"

// Item is a normalized, cross-kind search result.
type Item struct {
	id              string
	kind            kind.Kind
	displayName     string
	highlightedName string
	subtitle        string
	iconRef         string
	sortKey         int
}

// New creates an item. The highlighted name starts empty and the sort key at zero.
func New(id string, k kind.Kind, displayName, subtitle, iconRef string) Item {
	return Item{
		id:          id,
		kind:        k,
		displayName: displayName,
		subtitle:    subtitle,
		iconRef:     iconRef,
	}
}

// ID returns the upstream identifier.
func (i *Item) ID() string { return i.id }

// Kind returns the entity kind.
func (i *Item) Kind() kind.Kind { return i.kind }

// DisplayName returns the plain display text.
func (i *Item) DisplayName() string { return i.displayName }

// HighlightedName returns the escaped display markup.
func (i *Item) HighlightedName() string { return i.highlightedName }

// Subtitle returns the secondary line.
func (i *Item) Subtitle() string { return i.subtitle }

// IconRef returns the icon reference (usually a URL).
func (i *Item) IconRef() string { return i.iconRef }

// SortKey returns the position in the canonical concatenation.
func (i *Item) SortKey() int { return i.sortKey }

// WithHighlight returns a copy carrying the given highlighted markup.
func (i *Item) WithHighlight(markup string) Item {
	c := *i
	c.highlightedName = markup
	return c
}

// WithSortKey returns a copy carrying the given insertion position.
func (i *Item) WithSortKey(pos int) Item {
	c := *i
	c.sortKey = pos
	return c
}
