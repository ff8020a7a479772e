package search

import (
	"math"

	"github.com/poiesic/homeqa/core"
)

// ScoreDoc scores doc against a query with the default parameters.
func ScoreDoc(doc core.Document, query string) float64 {
	return DefaultParams().ScoreDoc(doc, query)
}

// ScoreDoc returns the relevance of doc to query: the number of query
// tokens found in the body divided by the square root of the body's
// distinct token count, plus TitleBoost per query token found in the title.
// The result is 0 when either the query or the body has no tokens.
func (p Params) ScoreDoc(doc core.Document, query string) float64 {
	queryTokens := tokenize(query, p.MinTokenLength)
	docTokens := tokenize(doc.Content, p.MinTokenLength)
	if queryTokens.Len() == 0 || docTokens.Len() == 0 {
		return 0
	}

	overlap := queryTokens.Overlap(docTokens)
	titleOverlap := queryTokens.Overlap(tokenize(doc.Title, p.MinTokenLength))

	base := float64(overlap) / math.Sqrt(float64(docTokens.Len()))
	return base + float64(titleOverlap)*p.TitleBoost
}
