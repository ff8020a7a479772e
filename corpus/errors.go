package corpus

import "errors"

var (
	// ErrRepositoryRequired is returned when loading without a repository.
	ErrRepositoryRequired = errors.New("document repository required")

	// ErrPersistFailed is returned when a document cannot be written to the repository.
	ErrPersistFailed = errors.New("failed to persist document")

	// ErrLoadFailed is returned when stored documents cannot be read back.
	ErrLoadFailed = errors.New("failed to load documents")
)
