package search

import (
	"math"
	"regexp"
	"unicode/utf8"
)

// noMatch is the first-match index of a name the pattern does not occur in.
const noMatch = math.MaxInt

// matcher finds case-insensitive, non-overlapping occurrences of a pattern.
// A nil matcher matches nothing.
type matcher struct {
	re *regexp.Regexp
}

// compile builds a matcher for a pattern produced by Sanitize. Sanitized
// patterns are literal, so compilation cannot fail. An empty pattern returns nil.
func compile(pattern string) *matcher {
	if pattern == "" {
		return nil
	}
	return &matcher{re: regexp.MustCompile("(?i)" + pattern)}
}

// find returns the byte ranges of every leftmost, non-overlapping,
// non-empty match in s.
func (m *matcher) find(s string) [][]int {
	if m == nil || s == "" {
		return nil
	}
	locs := m.re.FindAllStringIndex(s, -1)
	out := locs[:0]
	for _, loc := range locs {
		if loc[1] > loc[0] {
			out = append(out, loc)
		}
	}
	return out
}

// stats holds the relevance signals of one display name.
type stats struct {
	first int // rune offset of the first match, noMatch if none
	count int
}

func (m *matcher) stats(s string) stats {
	locs := m.find(s)
	if len(locs) == 0 {
		return stats{first: noMatch}
	}
	return stats{
		first: utf8.RuneCountInString(s[:locs[0][0]]),
		count: len(locs),
	}
}
