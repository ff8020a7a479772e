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

package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content fingerprint for documents.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical text always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a single entry of the knowledge corpus.
// Documents are immutable once registered. Titles are not unique.
type Document struct {
	Title   string
	Content string
	URL     string    // Optional link to the externally accessible original
	AddedAt time.Time // Set by the registry for runtime injections
}

// Fingerprint returns the content ID of the document's title and body.
func (d Document) Fingerprint() ID {
	return IDFromContent(d.Title + "\x00" + d.Content)
}

// ScoredDocument pairs a document with its relevance to a single query.
// A score of 0 means the document was filtered out.
type ScoredDocument struct {
	Document Document
	Score    float64
}

// ContextEntry is one (title, snippet) pair handed to a remote model.
type ContextEntry struct {
	Title   string
	Snippet string
	URL     string
}

// QAResult is the outcome of the local question answering pipeline.
// Sources are document titles, most relevant first. Sources is empty
// when no document cleared the confidence gate.
type QAResult struct {
	Answer  string
	Sources []string
}

// CitationKind classifies where a cited source can be read.
type CitationKind string

const (
	// CitationOnline marks a source with a public URL.
	CitationOnline CitationKind = "online"
	// CitationInternal marks a source only available inside the corpus.
	CitationInternal CitationKind = "internal"
)

// Citation describes one source referenced by a remote answer.
type Citation struct {
	Title string
	URL   string
	Kind  CitationKind
}

// ChatResponse is the terminal value of a conversation turn.
// TokensUsed is 0 whenever the answer came from the local pipeline.
type ChatResponse struct {
	Message    string
	Sources    []string
	Citations  []Citation
	TokensUsed int
}

// trimmed reports whether s has any non-whitespace content.
func trimmed(s string) bool {
	return strings.TrimSpace(s) != ""
}
