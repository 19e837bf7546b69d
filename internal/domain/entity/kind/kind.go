package kind

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/entsearch/internal/domain"
)

// Kind discriminates the entity types a search can return.
type Kind string

// Entity kinds. All is only meaningful as a filter value.
const (
	Company Kind = "company"
	Person  Kind = "person"
	Story   Kind = "story"
	Topic   Kind = "topic"
	// All selects every enabled kind.
	All Kind = "all"
)

var canonical = [...]Kind{Company, Person, Story, Topic}

// Canonical returns the entity kinds in concatenation order.
func Canonical() []Kind {
	out := make([]Kind, len(canonical))
	copy(out, canonical[:])
	return out
}

// IsValid reports whether k is one of the entity kinds. All is not an entity kind.
func (k Kind) IsValid() bool {
	return k == Company || k == Person || k == Story || k == Topic
}

// IsValidFilter reports whether k can be used as an active filter.
func (k Kind) IsValidFilter() bool {
	return k == All || k.IsValid()
}

// Ordinal returns the position of k in canonical order, or -1.
func (k Kind) Ordinal() int {
	for i, c := range canonical {
		if c == k {
			return i
		}
	}
	return -1
}

func (k Kind) String() string { return string(k) }

// Parse converts a case-insensitive name into a Kind. "all" and "" yield All.
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return All, nil
	}
	if !k.IsValidFilter() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidKind, s)
	}
	return k, nil
}

// Set is a set of entity kinds. Iteration via Kinds follows canonical order.
type Set map[Kind]struct{}

// NewSet builds a set from the given kinds.
func NewSet(kinds ...Kind) Set {
	s := make(Set, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// AllKinds returns a set holding every entity kind.
func AllKinds() Set {
	return NewSet(canonical[:]...)
}

// ParseSet parses kind names into a set, rejecting unknown names and "all".
func ParseSet(names []string) (Set, error) {
	s := make(Set, len(names))
	for _, n := range names {
		k, err := Parse(n)
		if err != nil {
			return nil, err
		}
		if k == All {
			return nil, fmt.Errorf("%w: %q is not an entity kind", domain.ErrInvalidKind, n)
		}
		s[k] = struct{}{}
	}
	return s, nil
}

// Has reports whether k is in the set.
func (s Set) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Kinds returns the recognised members in canonical order.
func (s Set) Kinds() []Kind {
	out := make([]Kind, 0, len(s))
	for _, k := range canonical {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
