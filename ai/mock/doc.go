// Package mock provides a test double implementation of ai.ChatModel.
//
// MockChatModel lets tests exercise the conversation path without a remote
// service and with controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	model := mock.NewMockChatModel()
//	completion, err := model.Complete(ctx, messages)
//
//	// Custom behavior injection
//	model.CompleteFunc = func(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error) {
//	    return nil, errors.New("connection refused")
//	}
//
//	// Check calls
//	count := model.CallCount()
//	sent := model.LastMessages()
//
// # Default Behavior
//
// Without a CompleteFunc the mock replies "mock reply: " followed by the
// last user message and reports one token per word of the reply.
package mock
