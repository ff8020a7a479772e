package ingestion

import "errors"

var (
	// ErrRegistryRequired is returned when a registry is not provided.
	ErrRegistryRequired = errors.New("document registry required")

	// ErrPipelineRequired is returned when a watcher has no pipeline.
	ErrPipelineRequired = errors.New("ingestion pipeline required")

	// ErrUnsupportedFormat is returned for files the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
