package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinTokenLength is the shortest token kept by Tokenize.
const DefaultMinTokenLength = 3

// TokenSet is a deduplicated set of normalized tokens.
type TokenSet map[string]struct{}

// Has reports whether token is in the set.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of distinct tokens.
func (s TokenSet) Len() int {
	return len(s)
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for token := range s {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Overlap counts the tokens of s that are also in other.
func (s TokenSet) Overlap(other TokenSet) int {
	n := 0
	for token := range s {
		if other.Has(token) {
			n++
		}
	}
	return n
}

// Normalize lowercases text, replaces every character outside [a-z0-9]
// and whitespace with a space, collapses whitespace runs and trims.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))
	return strings.Join(strings.Fields(mapped), " ")
}

// Tokenize returns the distinct normalized tokens of text that are at
// least DefaultMinTokenLength characters long.
func Tokenize(text string) TokenSet {
	return tokenize(text, DefaultMinTokenLength)
}

func tokenize(text string, minLength int) TokenSet {
	tokens := make(TokenSet)
	normalized := Normalize(text)
	if normalized == "" {
		return tokens
	}
	for _, token := range strings.Split(normalized, " ") {
		if utf8.RuneCountInString(token) >= minLength {
			tokens[token] = struct{}{}
		}
	}
	return tokens
}

// countHits counts query tokens that occur as substrings of the normalized text.
// Substring matching lets "approv" style fragments and compounds count.
func countHits(text string, queryTokens TokenSet) int {
	normalized := Normalize(text)
	hits := 0
	for token := range queryTokens {
		if strings.Contains(normalized, token) {
			hits++
		}
	}
	return hits
}

// runeLen returns the length of s in characters.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
