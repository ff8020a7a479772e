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


// Package storage provides the storage abstraction layer for homeqa.
//
// The document registry is in-memory. A DocumentRepository optionally
// persists documents injected at runtime so they can be replayed into a
// fresh registry on the next start. The seed corpus is never stored.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep callers decoupled from the
// backend:
//
//	repo, err := badger.OpenRepository(path)  // returns storage.DocumentRepository
//
// Internal constructors inside a backend package may return concrete types.
//
// # Usage
//
//	repo, err := badger.OpenRepository("/path/to/data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryRepository()
//
// # Serialization
//
// Documents are stored as JSON together with their content fingerprint.
// UnmarshalDocument rejects records whose content no longer matches the
// fingerprint with ErrFingerprintMismatch.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
