package search

import (
	"sort"

	"github.com/kailas-cloud/entsearch/internal/domain/entity/item"
)

// Rank orders items by the position of the first case-insensitive match of
// pattern in the display name (earliest first), then by match count (most
// first), then by input position. Names without a match sort last.
// pattern must come from Sanitize. An empty pattern leaves the order
// unchanged. The input is not modified.
func Rank(items []item.Item, pattern string) []item.Item {
	return rankWith(items, compile(pattern))
}

func rankWith(items []item.Item, m *matcher) []item.Item {
	out := make([]item.Item, len(items))
	copy(out, items)
	if m == nil || len(out) < 2 {
		return out
	}

	type scored struct {
		it  item.Item
		st  stats
		pos int
	}

	ranked := make([]scored, len(out))
	for i, it := range out {
		ranked[i] = scored{it: it, st: m.stats(it.DisplayName()), pos: i}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.st.first != b.st.first {
			return a.st.first < b.st.first
		}
		if a.st.count != b.st.count {
			return a.st.count > b.st.count
		}
		return a.pos < b.pos
	})

	for i, r := range ranked {
		out[i] = r.it
	}
	return out
}

// MatchCount returns the number of non-overlapping case-insensitive
// occurrences of the sanitized pattern in name.
func MatchCount(name, pattern string) int {
	return len(compile(pattern).find(name))
}
