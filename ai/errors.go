package ai

import "errors"

var (
	// ErrEmptyResponse is returned when the model reply has no content.
	ErrEmptyResponse = errors.New("empty response from chat model")

	// ErrNotConfigured is returned when a client is built without an API key.
	ErrNotConfigured = errors.New("chat model not configured")
)
