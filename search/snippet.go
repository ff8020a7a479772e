package search

import (
	"strings"

	"github.com/poiesic/homeqa/core"
)

// ExtractSnippet returns the best matching line of doc and up to window
// lines on each side, joined by newlines. Lines are trimmed and blank lines
// ignored. The best line has the most query tokens as substrings of its
// normalized form; the earliest line wins ties. ok is false when no line
// contains any query token.
func ExtractSnippet(doc core.Document, query string, window int) (snippet string, ok bool) {
	return extractSnippet(doc, Tokenize(query), window)
}

// ExtractSnippet extracts a snippet using ContextWindow and MinTokenLength.
func (p Params) ExtractSnippet(doc core.Document, query string) (string, bool) {
	return extractSnippet(doc, tokenize(query, p.MinTokenLength), p.ContextWindow)
}

func extractSnippet(doc core.Document, queryTokens TokenSet, window int) (string, bool) {
	lines := contentLines(doc.Content)

	best, bestHits := -1, 0
	for i, line := range lines {
		if hits := countHits(line, queryTokens); hits > bestHits {
			best, bestHits = i, hits
		}
	}
	if best < 0 {
		return "", false
	}

	start := max(0, best-window)
	end := min(len(lines), best+window+1)
	return strings.TrimSpace(strings.Join(lines[start:end], "\n")), true
}

// contentLines splits content into trimmed, non-empty lines.
func contentLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
