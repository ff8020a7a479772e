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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/storage"
)

// DocumentRepository implements storage.DocumentRepository using BadgerDB.
type DocumentRepository struct {
	backend     *Backend
	idSeq       *badger.Sequence
	ownsBackend bool
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository on an open backend.
// The caller keeps ownership of the backend.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	idSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// OpenRepository opens a document repository stored under dir.
// Closing the repository closes the underlying database.
func OpenRepository(dir string) (storage.DocumentRepository, error) {
	return openOwned(dir, false)
}

func openOwned(dir string, inMemory bool) (*DocumentRepository, error) {
	backend, err := OpenBackend(dir, inMemory)
	if err != nil {
		return nil, err
	}
	repo, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}

// Close releases the ID sequence and, for repositories opened with
// OpenRepository, the database.
func (r *DocumentRepository) Close() error {
	err := r.idSeq.Release()
	if r.ownsBackend {
		err = errors.Join(err, r.backend.Close())
	}
	return err
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDocuments appends documents in the order given.
func (r *DocumentRepository) AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			if err := ctx.Err(); err != nil {
				return err
			}

			seq, err := r.nextSeq()
			if err != nil {
				return err
			}

			if doc.AddedAt.IsZero() {
				doc.AddedAt = time.Now().UTC()
			}

			value, err := storage.MarshalDocument(doc)
			if err != nil {
				return err
			}
			key := makeDocumentKey(seq)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update fingerprint index
			if err := tx.Set(makeFingerprintKey(doc.Fingerprint()), key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return docs, err
}

// nextSeq returns the next document sequence number.
// BadgerDB sequences can return 0 on first call, so it is skipped.
func (r *DocumentRepository) nextSeq() (uint64, error) {
	seq, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	if seq == 0 {
		return r.idSeq.Next()
	}
	return seq, nil
}

// GetDocuments returns all stored documents in insertion order.
func (r *DocumentRepository) GetDocuments(ctx context.Context) ([]*core.Document, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var docs []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return docs, nil
}

// HasFingerprint reports whether a document with the fingerprint is stored.
func (r *DocumentRepository) HasFingerprint(ctx context.Context, fingerprint core.ID) (bool, error) {
	if r.backend.IsClosed() {
		return false, storage.ErrStorageClosed
	}

	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeFingerprintKey(fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// CountDocuments returns the number of stored documents.
func (r *DocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}
