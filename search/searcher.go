package search

import (
	"log/slog"

	"github.com/poiesic/homeqa/core"
)

// Corpus supplies the documents a Searcher answers from.
// Documents must return a snapshot that is safe to read while the
// corpus grows.
type Corpus interface {
	Documents() []core.Document
}

// Searcher answers questions and retrieves context from a corpus.
type Searcher struct {
	corpus Corpus
	params Params
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithParams overrides the default tuning parameters.
func WithParams(params Params) Option {
	return func(s *Searcher) error {
		if err := params.Validate(); err != nil {
			return err
		}
		s.params = params
		return nil
	}
}

// NewSearcher creates a new searcher over corpus.
func NewSearcher(corpus Corpus, opts ...Option) (*Searcher, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}

	s := &Searcher{
		corpus: corpus,
		params: DefaultParams(),
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Params returns the parameters in effect.
func (s *Searcher) Params() Params {
	return s.params
}

// AnswerQuestion answers query from the corpus alone. It always returns a
// result: out-of-scope questions get ScopeGuardAnswer with no sources.
func (s *Searcher) AnswerQuestion(query string) core.QAResult {
	return s.AnswerQuestionWithMonitor(query, nil)
}

// AnswerQuestionWithMonitor answers query and reports each stage to monitor.
func (s *Searcher) AnswerQuestionWithMonitor(query string, monitor Monitor) core.QAResult {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)
	normalized := Normalize(query)
	docs := s.corpus.Documents()

	ranked, inScope := s.params.Retrieve(normalized, docs)
	monitor.AfterRanking(ranked)

	topScore := 0.0
	if len(ranked) > 0 {
		topScore = ranked[0].Score
	}
	monitor.ScopeGate(inScope, topScore)

	if !inScope {
		s.logger.Debug("question out of scope", "ranked", len(ranked), "topScore", topScore)
		result := core.QAResult{Answer: ScopeGuardAnswer, Sources: []string{}}
		monitor.Finish(result)
		return result
	}

	sources := make([]string, len(ranked))
	snippets := make([]string, 0, len(ranked))
	for i, sd := range ranked {
		sources[i] = sd.Document.Title
		snippet, ok := s.params.ExtractSnippet(sd.Document, normalized)
		if !ok {
			monitor.SnippetMissing(sd.Document.Title)
			continue
		}
		monitor.SnippetExtracted(sd.Document.Title, snippet)
		snippets = append(snippets, snippet)
	}

	var result core.QAResult
	if len(snippets) == 0 {
		result = core.QAResult{Answer: NoSnippetAnswer, Sources: sources}
	} else {
		result = core.QAResult{Answer: s.params.Synthesize(normalized, snippets), Sources: sources}
	}

	s.logger.Debug("answered from corpus", "sources", len(sources), "snippets", len(snippets), "topScore", topScore)
	monitor.Finish(result)
	return result
}

// RetrieveContext returns (title, snippet) pairs for up to maxDocs ranked
// documents, for use as a remote model's prompt context. No confidence gate
// applies, and documents without a matching line are omitted. maxDocs <= 0
// selects the configured MaxDocs.
func (s *Searcher) RetrieveContext(query string, maxDocs int) []core.ContextEntry {
	if maxDocs <= 0 {
		maxDocs = s.params.MaxDocs
	}

	normalized := Normalize(query)
	ranked := s.params.Rank(normalized, s.corpus.Documents(), maxDocs)

	entries := make([]core.ContextEntry, 0, len(ranked))
	for _, sd := range ranked {
		snippet, ok := s.params.ExtractSnippet(sd.Document, normalized)
		if !ok {
			continue
		}
		entries = append(entries, core.ContextEntry{
			Title:   sd.Document.Title,
			Snippet: snippet,
			URL:     sd.Document.URL,
		})
	}
	return entries
}
