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


package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/homeqa/core"
)

// documentRecord is the stored form of a core.Document.
type documentRecord struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
	Fingerprint core.ID   `json:"fingerprint"`
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) ([]byte, error) {
	data, err := json.Marshal(documentRecord{
		Title:       doc.Title,
		Content:     doc.Content,
		URL:         doc.URL,
		AddedAt:     doc.AddedAt,
		Fingerprint: doc.Fingerprint(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalDocument deserializes a Document from bytes and checks it
// against its stored fingerprint.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	var rec documentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	doc := &core.Document{
		Title:   rec.Title,
		Content: rec.Content,
		URL:     rec.URL,
		AddedAt: rec.AddedAt,
	}
	if doc.Fingerprint() != rec.Fingerprint {
		return nil, fmt.Errorf("%w: %q", ErrFingerprintMismatch, rec.Title)
	}
	return doc, nil
}
