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

package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/storage"
)

// Registry is the ordered, append-only document collection questions are
// answered from. Readers take immutable snapshots without locking. Writers
// are serialized and publish a new snapshot on every append, so a reader
// never observes a partially appended registry.
type Registry struct {
	mu     sync.Mutex // serializes writers
	docs   atomic.Pointer[[]core.Document]
	repo   storage.DocumentRepository
	logger *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRepository persists documents registered at runtime to repo.
// Documents are written to the repository before they become visible.
func WithRepository(repo storage.DocumentRepository) RegistryOption {
	return func(r *Registry) {
		r.repo = repo
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger: slog.Default().With("component", "registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	empty := make([]core.Document, 0)
	r.docs.Store(&empty)
	return r
}

// NewSeededRegistry creates a registry holding SeedDocuments.
// Seed documents are never written to the repository.
func NewSeededRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	seed := SeedDocuments()
	r.docs.Store(&seed)
	return r
}

// Seed appends docs without writing them to the repository. Like
// RegisterAll, an invalid document rejects the whole batch.
func (r *Registry) Seed(docs ...core.Document) error {
	batch := make([]core.Document, len(docs))
	copy(batch, docs)
	for i := range batch {
		if err := core.ValidateDocument(&batch[i]); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.publish(batch)
	return nil
}

// Documents returns the current snapshot in registration order.
// The returned slice must not be modified.
func (r *Registry) Documents() []core.Document {
	return *r.docs.Load()
}

// Len returns the number of documents in the current snapshot.
func (r *Registry) Len() int {
	return len(*r.docs.Load())
}

// Contains reports whether a document with the given fingerprint is
// registered.
func (r *Registry) Contains(fingerprint core.ID) bool {
	for _, doc := range r.Documents() {
		if doc.Fingerprint() == fingerprint {
			return true
		}
	}
	return false
}

// Inject registers a document built from title and content.
func (r *Registry) Inject(ctx context.Context, title, content string) error {
	return r.Register(ctx, core.Document{Title: title, Content: content})
}

// Register validates doc, persists it when a repository is configured and
// appends it to the registry. Malformed documents are rejected and leave
// the registry unchanged.
func (r *Registry) Register(ctx context.Context, doc core.Document) error {
	return r.RegisterAll(ctx, doc)
}

// RegisterAll registers docs in order as one append. Either every document
// becomes visible or none does.
func (r *Registry) RegisterAll(ctx context.Context, docs ...core.Document) error {
	batch, err := prepare(docs)
	if err != nil || len(batch) == 0 {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commit(ctx, batch)
}

// RegisterNew registers the docs whose fingerprint is not registered yet,
// dropping repeats within docs, and returns how many were added. The
// duplicate check runs under the writer lock, so concurrent callers never
// register the same content twice.
func (r *Registry) RegisterNew(ctx context.Context, docs ...core.Document) (int, error) {
	batch, err := prepare(docs)
	if err != nil || len(batch) == 0 {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.Documents()
	known := make(map[core.ID]struct{}, len(current)+len(batch))
	for _, doc := range current {
		known[doc.Fingerprint()] = struct{}{}
	}
	fresh := batch[:0]
	for _, doc := range batch {
		fp := doc.Fingerprint()
		if _, ok := known[fp]; ok {
			r.logger.Debug("document already registered", "title", doc.Title)
			continue
		}
		known[fp] = struct{}{}
		fresh = append(fresh, doc)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := r.commit(ctx, fresh); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

// prepare copies and validates docs, stamping AddedAt where unset.
func prepare(docs []core.Document) ([]core.Document, error) {
	batch := make([]core.Document, len(docs))
	copy(batch, docs)

	now := time.Now().UTC()
	for i := range batch {
		if err := core.ValidateDocument(&batch[i]); err != nil {
			return nil, err
		}
		if batch[i].AddedAt.IsZero() {
			batch[i].AddedAt = now
		}
	}
	return batch, nil
}

// commit persists batch when a repository is configured and publishes it.
// Callers hold mu.
func (r *Registry) commit(ctx context.Context, batch []core.Document) error {
	if r.repo != nil {
		ptrs := make([]*core.Document, len(batch))
		for i := range batch {
			ptrs[i] = &batch[i]
		}
		if _, err := r.repo.AddDocuments(ctx, ptrs...); err != nil {
			return fmt.Errorf("%w: %w", ErrPersistFailed, err)
		}
	}

	r.publish(batch)
	for _, doc := range batch {
		r.logger.Debug("document registered", "title", doc.Title, "persisted", r.repo != nil)
	}
	return nil
}

// Load replays every document stored in the repository into the registry
// without writing them back. It returns the number of documents loaded.
func (r *Registry) Load(ctx context.Context) (int, error) {
	if r.repo == nil {
		return 0, ErrRepositoryRequired
	}

	stored, err := r.repo.GetDocuments(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	docs := make([]core.Document, 0, len(stored))
	for _, doc := range stored {
		docs = append(docs, *doc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.publish(docs)

	r.logger.Info("documents loaded", "count", len(docs))
	return len(docs), nil
}

// publish stores a new snapshot with docs appended. Callers hold mu.
func (r *Registry) publish(docs []core.Document) {
	current := *r.docs.Load()
	next := make([]core.Document, len(current), len(current)+len(docs))
	copy(next, current)
	next = append(next, docs...)
	r.docs.Store(&next)
}
