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

// Package search implements keyword retrieval and extractive answering.
//
// The pipeline is deterministic and runs entirely in memory:
//   - Normalize and Tokenize reduce text to a set of lowercase tokens
//   - ScoreDoc weighs token overlap by document length, with a title boost
//   - Rank and Retrieve order documents and apply a confidence gate
//   - ExtractSnippet windows the best matching line of a document
//   - Synthesize ranks snippet sentences into a bounded answer
//
// The Searcher type combines these stages over a Corpus. All tunable
// constants live in Params.
package search
