package chat

import (
	"regexp"
	"strings"

	"github.com/poiesic/homeqa/core"
)

var sourceURL = regexp.MustCompile(`\((https?://[^)]+)\)`)

// ParseSources extracts the cited documents from a knowledge context built
// by FormatKnowledgeContext. Every block starting with "Source:" yields its
// title, without any parenthesized URL, and a citation that is online when
// the block carries a URL and internal otherwise.
func ParseSources(knowledgeContext string) ([]string, []core.Citation) {
	titles := []string{}
	citations := []core.Citation{}
	if knowledgeContext == "" {
		return titles, citations
	}

	for _, block := range strings.Split(knowledgeContext, "\n\n") {
		if !strings.HasPrefix(block, "Source:") {
			continue
		}
		line, _, _ := strings.Cut(block, "\n")
		line = strings.Replace(line, sourcePrefix, "", 1)

		citation := core.Citation{Title: line, Kind: core.CitationInternal}
		if m := sourceURL.FindStringSubmatchIndex(line); m != nil {
			citation.URL = line[m[2]:m[3]]
			citation.Title = strings.TrimSpace(line[:m[0]] + line[m[1]:])
			citation.Kind = core.CitationOnline
		}

		titles = append(titles, citation.Title)
		citations = append(citations, citation)
	}
	return titles, citations
}

// AccessibleCitations returns the citations a reader can open.
func AccessibleCitations(citations []core.Citation) []core.Citation {
	out := make([]core.Citation, 0, len(citations))
	for _, c := range citations {
		if c.Kind == core.CitationOnline {
			out = append(out, c)
		}
	}
	return out
}
