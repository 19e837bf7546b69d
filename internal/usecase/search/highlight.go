package search

import (
	"html"
	"strings"
)

// DefaultHighlightTag is the element used to wrap matches.
const DefaultHighlightTag = "mark"

// Highlighter wraps pattern matches in emphasis markup.
type Highlighter struct {
	openTag  string
	closeTag string
}

// NewHighlighter creates a highlighter wrapping matches in <tag>...</tag>.
// The tag must be a plain element name; an empty tag selects DefaultHighlightTag.
func NewHighlighter(tag string) Highlighter {
	if tag == "" {
		tag = DefaultHighlightTag
	}
	return Highlighter{openTag: "<" + tag + ">", closeTag: "</" + tag + ">"}
}

// Highlight HTML-escapes name and wraps every non-overlapping
// case-insensitive match of the sanitized pattern. An empty pattern returns
// the escaped name.
func (h Highlighter) Highlight(name, pattern string) string {
	return h.apply(compile(pattern), name)
}

// Highlight uses the default markup.
func Highlight(name, pattern string) string {
	return NewHighlighter(DefaultHighlightTag).Highlight(name, pattern)
}

// apply matches on the unescaped text so entities are never split and the
// wrapper count equals the match count.
func (h Highlighter) apply(m *matcher, name string) string {
	locs := m.find(name)
	if len(locs) == 0 {
		return html.EscapeString(name)
	}

	var b strings.Builder
	b.Grow(len(name) + len(locs)*(len(h.openTag)+len(h.closeTag)) + 16)
	prev := 0
	for _, loc := range locs {
		b.WriteString(html.EscapeString(name[prev:loc[0]]))
		b.WriteString(h.openTag)
		b.WriteString(html.EscapeString(name[loc[0]:loc[1]]))
		b.WriteString(h.closeTag)
		prev = loc[1]
	}
	b.WriteString(html.EscapeString(name[prev:]))
	return b.String()
}
