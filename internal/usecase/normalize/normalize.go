// Package normalize maps raw per-kind upstream records into search items.
// Each kind has one independent normalizer; none of them rank or highlight.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/entsearch/internal/domain"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/kind"
	"github.com/kailas-cloud/entsearch/internal/domain/entity/record"
)

// Skip describes a record dropped during normalization.
type Skip struct {
	Index int
	Err   error
}

// Output is the result of normalizing one kind's records.
type Output struct {
	Items   []item.Item
	Skipped []Skip
}

// Func normalizes the records of a single kind. It never fails as a whole:
// unusable records are reported in Output.Skipped.
type Func func(records []record.Raw) Output

// Registry looks up the normalizer for a kind.
type Registry map[kind.Kind]Func

// Default returns the registry of built-in normalizers.
func Default() Registry {
	return Registry{
		kind.Company: Companies,
		kind.Person:  People,
		kind.Story:   Stories,
		kind.Topic:   Topics,
	}
}

// Lookup returns the normalizer registered for k.
func (r Registry) Lookup(k kind.Kind) (Func, bool) {
	fn, ok := r[k]
	return fn, ok && fn != nil
}

// each decodes every record into T and builds an item from it.
func each[T any](records []record.Raw, build func(T) (item.Item, error)) Output {
	out := Output{Items: make([]item.Item, 0, len(records))}
	for i, raw := range records {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			out.Skipped = append(out.Skipped, Skip{Index: i, Err: fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)})
			continue
		}
		it, err := build(rec)
		if err != nil {
			out.Skipped = append(out.Skipped, Skip{Index: i, Err: err})
			continue
		}
		out.Items = append(out.Items, it)
	}
	return out
}

// requireIdentity checks the fields every kind needs to produce an item.
func requireIdentity(id record.ID, name string) error {
	if id == "" {
		return fmt.Errorf("%w: missing id", domain.ErrMalformedRecord)
	}
	if name == "" {
		return fmt.Errorf("%w: missing name", domain.ErrMalformedRecord)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
