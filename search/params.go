// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import "fmt"

// Params holds the tunable constants of the retrieval and synthesis pipeline.
// The defaults reproduce the behavior of the production assistant; none of
// them has a documented derivation, so change them only with evidence.
type Params struct {
	// MinScore is the confidence gate: when the best document scores below
	// it the question is treated as out of scope.
	// Default: 0.15
	MinScore float64 `yaml:"min_score" toml:"min_score"`

	// MaxDocs is the number of ranked documents answers are built from.
	// Default: 3
	MaxDocs int `yaml:"max_docs" toml:"max_docs"`

	// ContextWindow is the number of lines kept on each side of the best
	// matching line of a snippet.
	// Default: 3
	ContextWindow int `yaml:"context_window" toml:"context_window"`

	// TitleBoost is added to a score for every query token found in the title.
	// Default: 0.3
	TitleBoost float64 `yaml:"title_boost" toml:"title_boost"`

	// MinTokenLength is the shortest token considered for scoring.
	// Default: 3
	MinTokenLength int `yaml:"min_token_length" toml:"min_token_length"`

	// MinSentenceLength and MaxSentenceLength are exclusive bounds on the
	// length of sentences eligible for synthesis.
	// Defaults: 20 and 500
	MinSentenceLength int `yaml:"min_sentence_length" toml:"min_sentence_length"`
	MaxSentenceLength int `yaml:"max_sentence_length" toml:"max_sentence_length"`

	// CandidateSentences caps the synthesis pool, earliest sentences first.
	// Default: 8
	CandidateSentences int `yaml:"candidate_sentences" toml:"candidate_sentences"`

	// TopSentences is the number of ranked sentences joined into an answer.
	// Default: 4
	TopSentences int `yaml:"top_sentences" toml:"top_sentences"`

	// AnswerLimit is the maximum answer length before "..." is appended.
	// Default: 1000
	AnswerLimit int `yaml:"answer_limit" toml:"answer_limit"`

	// BriefThreshold is the length at or below which a synthesized answer is
	// replaced by BriefAnswer.
	// Default: 50
	BriefThreshold int `yaml:"brief_threshold" toml:"brief_threshold"`
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		MinScore:           0.15,
		MaxDocs:            3,
		ContextWindow:      3,
		TitleBoost:         0.3,
		MinTokenLength:     DefaultMinTokenLength,
		MinSentenceLength:  20,
		MaxSentenceLength:  500,
		CandidateSentences: 8,
		TopSentences:       4,
		AnswerLimit:        1000,
		BriefThreshold:     50,
	}
}

// Validate checks that every parameter is usable.
func (p Params) Validate() error {
	switch {
	case p.MinScore < 0:
		return fmt.Errorf("%w: MinScore must not be negative", ErrInvalidParams)
	case p.MaxDocs < 1:
		return fmt.Errorf("%w: MaxDocs must be at least 1", ErrInvalidParams)
	case p.ContextWindow < 0:
		return fmt.Errorf("%w: ContextWindow must not be negative", ErrInvalidParams)
	case p.TitleBoost < 0:
		return fmt.Errorf("%w: TitleBoost must not be negative", ErrInvalidParams)
	case p.MinTokenLength < 1:
		return fmt.Errorf("%w: MinTokenLength must be at least 1", ErrInvalidParams)
	case p.MinSentenceLength < 0 || p.MaxSentenceLength <= p.MinSentenceLength:
		return fmt.Errorf("%w: sentence length bounds are inverted", ErrInvalidParams)
	case p.CandidateSentences < 1 || p.TopSentences < 1:
		return fmt.Errorf("%w: sentence counts must be at least 1", ErrInvalidParams)
	case p.AnswerLimit < 1:
		return fmt.Errorf("%w: AnswerLimit must be at least 1", ErrInvalidParams)
	case p.BriefThreshold < 0:
		return fmt.Errorf("%w: BriefThreshold must not be negative", ErrInvalidParams)
	}
	return nil
}
