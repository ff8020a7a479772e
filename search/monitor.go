package search

import "github.com/poiesic/homeqa/core"

// Monitor provides hooks to observe a question being answered.
// Implement this interface to trace ranking, gating and extraction.
type Monitor interface {
	Start(query string)
	AfterRanking(ranked []core.ScoredDocument)
	ScopeGate(passed bool, topScore float64)
	SnippetExtracted(title, snippet string)
	SnippetMissing(title string)
	Finish(result core.QAResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterRanking(_ []core.ScoredDocument) {}
func (n *noopMonitor) ScopeGate(_ bool, _ float64)          {}
func (n *noopMonitor) SnippetExtracted(_, _ string)         {}
func (n *noopMonitor) SnippetMissing(_ string)              {}
func (n *noopMonitor) Finish(_ core.QAResult)               {}
