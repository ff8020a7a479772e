package mcp

import (
	"context"

	"github.com/poiesic/homeqa/core"
)

type mockEngine struct {
	result    core.QAResult
	entries   []core.ContextEntry
	response  core.ChatResponse
	injectErr error

	injected    []core.Document
	lastMaxDocs int
	lastHistory []core.ConversationMessage
}

func (m *mockEngine) AnswerQuestion(string) core.QAResult {
	return m.result
}

func (m *mockEngine) RetrieveContext(_ string, maxDocs int) []core.ContextEntry {
	m.lastMaxDocs = maxDocs
	return m.entries
}

func (m *mockEngine) InjectDocument(_ context.Context, doc core.Document) error {
	if m.injectErr != nil {
		return m.injectErr
	}
	m.injected = append(m.injected, doc)
	return nil
}

func (m *mockEngine) SendChatMessage(_ context.Context, _ string, history []core.ConversationMessage) core.ChatResponse {
	m.lastHistory = history
	return m.response
}
