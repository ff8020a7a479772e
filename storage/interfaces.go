package storage

import (
	"context"

	"github.com/poiesic/homeqa/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository persists documents registered at runtime.
type DocumentRepository interface {
	Repository
	// AddDocuments appends one or more documents to storage.
	// Sets AddedAt if not already set.
	// Returns the documents with timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocuments returns every stored document in insertion order.
	GetDocuments(ctx context.Context) ([]*core.Document, error)

	// HasFingerprint reports whether a document with the given
	// core.Document.Fingerprint has been stored.
	HasFingerprint(ctx context.Context, fingerprint core.ID) (bool, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)
}
