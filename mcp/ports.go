package mcp

import (
	"context"

	"github.com/poiesic/homeqa/core"
)

// Engine is the question answering surface served over MCP.
// *homeqa.Engine implements it.
type Engine interface {
	AnswerQuestion(query string) core.QAResult
	RetrieveContext(query string, maxDocs int) []core.ContextEntry
	InjectDocument(ctx context.Context, doc core.Document) error
	SendChatMessage(ctx context.Context, userMessage string, history []core.ConversationMessage) core.ChatResponse
}

// Ports aggregates the collaborators required by the MCP server.
type Ports struct {
	Engine Engine
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
