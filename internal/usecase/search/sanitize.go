package search

import "regexp"

// Sanitize escapes the regular expression metacharacters . * + ? ^ $ { } ( ) | [ ] \
// so raw user input can be compiled as a literal pattern.
// Empty input yields an empty pattern.
func Sanitize(raw string) string {
	return regexp.QuoteMeta(raw)
}
