package search

import (
	"regexp"
	"slices"
	"strings"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Synthesize composes an extractive answer from snippets using the
// default parameters.
func Synthesize(query string, snippets []string) string {
	return DefaultParams().Synthesize(query, snippets)
}

// Synthesize splits the snippets into sentences, keeps the first
// CandidateSentences whose length lies strictly between the sentence
// bounds, ranks them by query-token hits and joins the best TopSentences
// with ". ". Answers longer than AnswerLimit are cut and suffixed with
// "...". Answers of BriefThreshold characters or fewer are replaced by
// BriefAnswer.
func (p Params) Synthesize(query string, snippets []string) string {
	combined := strings.Join(snippets, "\n\n")

	candidates := make([]string, 0, p.CandidateSentences)
	for _, sentence := range sentenceBoundary.Split(combined, -1) {
		sentence = strings.TrimSpace(sentence)
		n := runeLen(sentence)
		if n <= p.MinSentenceLength || n >= p.MaxSentenceLength {
			continue
		}
		candidates = append(candidates, sentence)
		if len(candidates) == p.CandidateSentences {
			break
		}
	}

	queryTokens := tokenize(query, p.MinTokenLength)
	type rankedSentence struct {
		text string
		hits int
	}
	ranked := make([]rankedSentence, len(candidates))
	for i, sentence := range candidates {
		ranked[i] = rankedSentence{text: sentence, hits: countHits(sentence, queryTokens)}
	}
	slices.SortStableFunc(ranked, func(a, b rankedSentence) int {
		return b.hits - a.hits
	})
	if len(ranked) > p.TopSentences {
		ranked = ranked[:p.TopSentences]
	}

	chosen := make([]string, len(ranked))
	for i, r := range ranked {
		chosen[i] = r.text
	}
	answer := strings.Join(chosen, ". ")

	if runeLen(answer) > p.AnswerLimit {
		answer = truncateRunes(answer, p.AnswerLimit) + "..."
	}
	if runeLen(answer) <= p.BriefThreshold {
		return BriefAnswer
	}
	return answer
}
