// Package mcp exposes the question answering engine as a Model Context
// Protocol tool server, so assistants can query the home buying corpus,
// pull retrieval context and add documents at runtime.
package mcp

import "errors"

var (
	// ErrMissingEngine is returned when the engine is not provided.
	ErrMissingEngine = errors.New("mcp: engine is required")

	// ErrInvalidHistory is returned when a chat history entry has an unknown role.
	ErrInvalidHistory = errors.New("mcp: invalid chat history")
)
