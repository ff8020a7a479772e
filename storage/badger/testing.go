package badger

import "github.com/poiesic/homeqa/storage"

// NewMemoryRepository creates an in-memory document repository for testing.
// Closing the repository closes its database.
func NewMemoryRepository() (storage.DocumentRepository, error) {
	return openOwned("", true)
}
