package scraper

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeQueryText lowercases the text and collapses every run of
// non-alphanumeric characters into a single space.
func NormalizeQueryText(text string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(text), " "))
}

// Tokenize splits normalized text into its word tokens.
func Tokenize(text string) []string {
	return strings.Fields(NormalizeQueryText(text))
}

// TitleMatchesQuery reports whether every token of the query appears in the
// candidate title. The test is an asymmetric subset check, order- and
// duplicate-independent, with no partial credit. An empty query or an empty
// title never matches.
func TitleMatchesQuery(title, query string) bool {
	queryTokens := Tokenize(query)
	titleTokens := Tokenize(title)
	if len(queryTokens) == 0 || len(titleTokens) == 0 {
		return false
	}

	titleSet := make(map[string]struct{}, len(titleTokens))
	for _, token := range titleTokens {
		titleSet[token] = struct{}{}
	}

	for _, token := range queryTokens {
		if _, ok := titleSet[token]; !ok {
			return false
		}
	}
	return true
}
