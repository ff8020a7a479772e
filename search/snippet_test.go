package search

import (
	"strings"
	"testing"

	"github.com/poiesic/homeqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedDoc(match int, total int) core.Document {
	words := []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten", "eleven"}
	lines := make([]string, total)
	for i := 0; i < total; i++ {
		lines[i] = "line " + words[i]
		if i == match {
			lines[i] += " mentions escrow"
		}
	}
	return core.Document{Title: "Numbered", Content: strings.Join(lines, "\n")}
}

func TestExtractSnippet(t *testing.T) {
	t.Run("window around best line", func(t *testing.T) {
		snippet, ok := ExtractSnippet(numberedDoc(5, 10), "escrow", 3)
		require.True(t, ok)
		assert.Equal(t, "line two\nline three\nline four\nline five mentions escrow\nline six\nline seven\nline eight", snippet)
	})

	t.Run("window clamped at start", func(t *testing.T) {
		snippet, ok := ExtractSnippet(numberedDoc(1, 10), "escrow", 3)
		require.True(t, ok)
		assert.Equal(t, "line zero\nline one mentions escrow\nline two\nline three\nline four", snippet)
	})

	t.Run("window clamped at end", func(t *testing.T) {
		snippet, ok := ExtractSnippet(numberedDoc(9, 10), "escrow", 3)
		require.True(t, ok)
		assert.Equal(t, "line six\nline seven\nline eight\nline nine mentions escrow", snippet)
	})

	t.Run("blank lines ignored and trimmed", func(t *testing.T) {
		doc := core.Document{Content: "\n   intro   \n\n\n  escrow opens  \n\n  outro\n"}
		snippet, ok := ExtractSnippet(doc, "escrow", 1)
		require.True(t, ok)
		assert.Equal(t, "intro\nescrow opens\noutro", snippet)
	})

	t.Run("first line wins ties", func(t *testing.T) {
		doc := core.Document{Content: "alpha\nescrow one\nbeta\nescrow two\ngamma"}
		snippet, ok := ExtractSnippet(doc, "escrow", 0)
		require.True(t, ok)
		assert.Equal(t, "escrow one", snippet)
	})

	t.Run("most hits wins", func(t *testing.T) {
		doc := core.Document{Content: "escrow deposit\nescrow deposit refund\nrefund"}
		snippet, ok := ExtractSnippet(doc, "escrow deposit refund", 0)
		require.True(t, ok)
		assert.Equal(t, "escrow deposit refund", snippet)
	})

	t.Run("substring match", func(t *testing.T) {
		doc := core.Document{Content: "Nothing here\nGet pre-approved before house hunting"}
		snippet, ok := ExtractSnippet(doc, "approv", 0)
		require.True(t, ok)
		assert.Equal(t, "Get pre-approved before house hunting", snippet)
	})

	t.Run("no hits", func(t *testing.T) {
		_, ok := ExtractSnippet(mortgageBasics, "weather", 3)
		assert.False(t, ok)
	})

	t.Run("empty query", func(t *testing.T) {
		_, ok := ExtractSnippet(mortgageBasics, "", 3)
		assert.False(t, ok)
	})
}

func TestParamsExtractSnippet(t *testing.T) {
	params := DefaultParams()
	params.ContextWindow = 1

	snippet, ok := params.ExtractSnippet(numberedDoc(5, 10), "escrow")
	require.True(t, ok)
	assert.Equal(t, "line four\nline five mentions escrow\nline six", snippet)
}
