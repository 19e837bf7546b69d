package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/search/resultset"
)

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query   QueryBody                    `json:"query"`
	Sources map[string][]json.RawMessage `json:"sources"`
}

// QueryBody carries the query fields. A nil EnabledKinds selects the configured default.
type QueryBody struct {
	Text         string   `json:"text"`
	ActiveFilter string   `json:"active_filter"`
	EnabledKinds []string `json:"enabled_kinds"`
}

// SearchResponse is the body returned by POST /v1/search.
type SearchResponse struct {
	Items           []ItemBody `json:"items"`
	UnfilteredCount int        `json:"unfiltered_count"`
}

// ItemBody is one ranked result. HighlightedName is escaped markup.
type ItemBody struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	DisplayName     string `json:"display_name"`
	HighlightedName string `json:"highlighted_name"`
	Subtitle        string `json:"subtitle,omitempty"`
	IconRef         string `json:"icon_ref,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadRequest   = "bad_request"
	CodeInvalidKind  = "invalid_kind"
	CodeInvalidQuery = "invalid_query"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal_error"
)

func resultSetToBody(rs resultset.ResultSet) SearchResponse {
	items := make([]ItemBody, 0, rs.Len())
	for _, it := range rs.Items() {
		items = append(items, itemToBody(it))
	}
	return SearchResponse{Items: items, UnfilteredCount: rs.UnfilteredCount()}
}

func itemToBody(it item.Item) ItemBody {
	return ItemBody{
		ID:              it.ID(),
		Kind:            it.Kind().String(),
		DisplayName:     it.DisplayName(),
		HighlightedName: it.HighlightedName(),
		Subtitle:        it.Subtitle(),
		IconRef:         it.IconRef(),
	}
}
