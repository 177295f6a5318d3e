package search

import "strings"

// Tokenize splits a raw query string into normalized keyword tokens.
// Full-width spaces (U+3000) are treated as separators like ASCII
// whitespace, runs of whitespace collapse, and empty tokens are dropped.
// An empty or whitespace-only query yields no tokens, which downstream
// code treats as "no keyword constraint".
func Tokenize(raw string) []string {
	normalized := strings.ReplaceAll(raw, "　", " ")
	return strings.Fields(normalized)
}
