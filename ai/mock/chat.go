package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/core"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields.
type MockChatModel struct {
	// CompleteFunc is called by Complete if set.
	// If nil, replies deterministically to the last user message.
	CompleteFunc func(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error)

	mu           sync.Mutex
	callCount    int
	lastMessages []core.ConversationMessage
	closed       bool
}

var _ ai.ChatModel = (*MockChatModel)(nil)

// NewMockChatModel creates a mock chat model with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// NewMockChatModelWithReply creates a mock that always answers reply.
func NewMockChatModelWithReply(reply string, tokens int) *MockChatModel {
	return &MockChatModel{
		CompleteFunc: func(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error) {
			return &ai.Completion{Text: reply, TotalTokens: tokens}, nil
		},
	}
}

// NewFailingMockChatModel creates a mock whose calls all fail with err.
func NewFailingMockChatModel(err error) *MockChatModel {
	return &MockChatModel{
		CompleteFunc: func(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error) {
			return nil, err
		},
	}
}

// Complete records the call and returns the injected or default reply.
func (m *MockChatModel) Complete(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error) {
	m.mu.Lock()
	m.callCount++
	m.lastMessages = append([]core.ConversationMessage(nil), messages...)
	fn := m.CompleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}

	// Default: echo the last user message
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == core.RoleUser {
			last = messages[i].Content
			break
		}
	}
	reply := "mock reply: " + last
	return &ai.Completion{Text: reply, TotalTokens: len(strings.Fields(reply))}, nil
}

// Close marks the model closed.
func (m *MockChatModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockChatModel) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// CallCount returns the number of times Complete was called.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastMessages returns a copy of the messages of the most recent call.
func (m *MockChatModel) LastMessages() []core.ConversationMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.ConversationMessage(nil), m.lastMessages...)
}

// Reset clears recorded calls and injected behavior.
func (m *MockChatModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastMessages = nil
	m.closed = false
	m.CompleteFunc = nil
}
