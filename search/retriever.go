package search

import (
	"slices"

	"github.com/poiesic/homeqa/core"
)

// Rank scores every document against query, drops non-positive scores and
// returns at most maxDocs documents, best first. Equal scores keep the
// order of docs.
func (p Params) Rank(query string, docs []core.Document, maxDocs int) []core.ScoredDocument {
	scored := make([]core.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		score := p.ScoreDoc(doc, query)
		if score <= 0 {
			continue
		}
		scored = append(scored, core.ScoredDocument{Document: doc, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b core.ScoredDocument) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	if maxDocs >= 0 && len(scored) > maxDocs {
		scored = scored[:maxDocs]
	}
	return scored
}

// Retrieve ranks docs and applies the confidence gate. The returned bool is
// false when nothing ranked or the best score is below MinScore; callers
// must then answer with the scope guard instead of synthesizing.
func (p Params) Retrieve(query string, docs []core.Document) ([]core.ScoredDocument, bool) {
	ranked := p.Rank(query, docs, p.MaxDocs)
	return ranked, InScope(ranked, p.MinScore)
}

// InScope reports whether a ranked list clears the confidence gate.
func InScope(ranked []core.ScoredDocument, minScore float64) bool {
	return len(ranked) > 0 && ranked[0].Score >= minScore
}
