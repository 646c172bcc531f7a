package search

import (
	"strings"
	"unicode"
)

// Tokenize splits a document name into normalized lowercase tokens.
// Anything that is not a letter or digit separates tokens, so
// "Tax-Return_2025" becomes ["tax", "return", "2025"]. Short tokens are
// kept: display names are short to begin with, and dropping them would
// make names like "CV" unreachable.
func Tokenize(name string) []string {
	sep := func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsNumber(c)
	}
	fields := strings.FieldsFunc(name, sep)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, strings.ToLower(field))
	}
	return tokens
}
