// Package ingestion feeds documents into the registry at runtime.
//
// The Pipeline type loads markdown, text and PDF files concurrently on an
// ants worker pool and registers them in input order, skipping files whose
// content is already registered. A Watcher keeps a directory in sync by
// ingesting files as they are created or written. InjectAllowlisted
// registers approved external pages that pass the home buying topic filter.
//
// Per-file errors are collected and returned together; one bad file never
// prevents the rest of a batch from being registered.
package ingestion
