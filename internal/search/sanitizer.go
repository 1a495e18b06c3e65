package search

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^0-9A-Za-z_]`)

// SanitizeTerm normalizes a free-text search string into an FTS5 match
// expression: split on whitespace, strip non-word characters from each
// token, drop empty tokens, and require every surviving token to match
// by joining with AND. Tokens are double-quoted so FTS5 reads them as
// plain strings; a bare NOT or OR would otherwise be parsed as an
// operator. A term that reduces to nothing (empty, blank, or all
// punctuation) returns "" and the caller skips the text predicate.
func SanitizeTerm(term string) string {
	var tokens []string
	for _, field := range strings.Fields(term) {
		token := nonWord.ReplaceAllString(field, "")
		if token != "" {
			tokens = append(tokens, `"`+token+`"`)
		}
	}
	return strings.Join(tokens, " AND ")
}
