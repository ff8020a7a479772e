package search

import (
	"math"
	"testing"

	"github.com/poiesic/homeqa/core"
	"github.com/stretchr/testify/assert"
)

var mortgageBasics = core.Document{
	Title:   "Mortgage Basics",
	Content: "A pre-approval letter shows sellers you are serious about buying. Get pre-approved before house hunting.",
}

func TestScoreDoc(t *testing.T) {
	t.Run("length normalized overlap", func(t *testing.T) {
		// 15 distinct body tokens, "pre" and "approval" overlap
		score := ScoreDoc(mortgageBasics, Normalize("What is pre-approval?"))
		assert.InDelta(t, 2/math.Sqrt(15), score, 1e-9)
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ScoreDoc(mortgageBasics, ""))
		assert.Equal(t, 0.0, ScoreDoc(mortgageBasics, "a an to"))
	})

	t.Run("empty document scores zero", func(t *testing.T) {
		doc := core.Document{Title: "Escrow", Content: "a b c"}
		assert.Equal(t, 0.0, ScoreDoc(doc, "escrow"))
	})

	t.Run("title only match is positive", func(t *testing.T) {
		doc := core.Document{Title: "Escrow Guide", Content: "Nothing relevant here at all"}
		assert.InDelta(t, 0.3, ScoreDoc(doc, "escrow"), 1e-9)
	})

	t.Run("title boost adds to body overlap", func(t *testing.T) {
		doc := core.Document{Title: "Mortgage Pre-approval", Content: mortgageBasics.Content}
		score := ScoreDoc(doc, "pre approval")
		assert.InDelta(t, 2/math.Sqrt(15)+0.6, score, 1e-9)
	})

	t.Run("custom boost", func(t *testing.T) {
		params := DefaultParams()
		params.TitleBoost = 1
		doc := core.Document{Title: "Escrow Guide", Content: "Nothing relevant here at all"}
		assert.InDelta(t, 1.0, params.ScoreDoc(doc, "escrow"), 1e-9)
	})

	t.Run("never negative", func(t *testing.T) {
		queries := []string{"", "escrow", "what is pre approval", "zzz yyy"}
		for _, q := range queries {
			assert.GreaterOrEqual(t, ScoreDoc(mortgageBasics, q), 0.0)
		}
	})
}
