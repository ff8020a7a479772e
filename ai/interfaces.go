package ai

import (
	"context"

	"github.com/poiesic/homeqa/core"
)

// ChatModel generates an assistant reply for a conversation.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Complete sends messages, in order, to the model and returns its reply.
	// Returns ErrEmptyResponse when the model produced no text.
	// Returns an error if the call fails.
	Complete(ctx context.Context, messages []core.ConversationMessage) (*Completion, error)

	// Close releases resources held by the model client.
	Close() error
}
