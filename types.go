package entsearch

import (
	"encoding/json"

	"github.com/kailas-cloud/entsearch/internal/domain"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
)

// Kind identifies an entity type.
type Kind = kind.Kind

// Entity kinds, and the All filter.
const (
	Company = kind.Company
	Person  = kind.Person
	Story   = kind.Story
	Topic   = kind.Topic
	All     = kind.All
)

// ErrInvalidKind is returned when a query names an unknown kind.
var ErrInvalidKind = domain.ErrInvalidKind

// Sources maps each loaded kind to its raw upstream JSON records.
type Sources map[Kind][]json.RawMessage

// Query describes one search. An empty Filter means All; nil Enabled means every kind.
type Query struct {
	Text    string
	Filter  Kind
	Enabled []Kind
}

// Item is one ranked result. HighlightedName is HTML-escaped markup safe
// for direct insertion into a document.
type Item struct {
	ID              string `json:"id"`
	Kind            Kind   `json:"kind"`
	DisplayName     string `json:"display_name"`
	HighlightedName string `json:"highlighted_name"`
	Subtitle        string `json:"subtitle,omitempty"`
	IconRef         string `json:"icon_ref,omitempty"`
}

// ResultSet is the ordered output of Search.
type ResultSet struct {
	Items []Item `json:"items"`
	// UnfilteredCount counts items across every loaded kind before filtering.
	UnfilteredCount int `json:"unfiltered_count"`
}
