package faq

import (
	"strings"
	"unicode"
)

// canonicalQuery reduces a query to a stable counter key: lowercased,
// punctuation collapsed to single spaces.
func canonicalQuery(q string) string {
	lowered := strings.ToLower(strings.TrimSpace(q))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// tokenize lowercases text and extracts word tokens: maximal runs of
// letters, digits and underscores at least two runes long. Shorter runs
// are dropped, matching the fitted vectorizer's token rule.
func tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) >= 2 {
			tokens = append(tokens, string(current))
		}
		current = current[:0]
	}
	for _, r := range lowered {
		if isWordRune(r) {
			current = append(current, r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// ngramTerms expands a token stream into unigrams followed by bigrams.
// Bigrams join adjacent tokens with a single space.
func ngramTerms(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
