package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/poiesic/homeqa/core"
)

// AnswerInput is the input schema for the answer_question tool.
type AnswerInput struct {
	Question string `json:"question" jsonschema:"the home buying question to answer"`
}

// AnswerOutput is the output schema for the answer_question tool.
type AnswerOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// ContextInput is the input schema for the retrieve_context tool.
type ContextInput struct {
	Query   string `json:"query" jsonschema:"the text to find relevant passages for"`
	MaxDocs int    `json:"max_docs,omitempty" jsonschema:"maximum number of documents (default 3)"`
}

// ContextEntryOutput is a single retrieved passage.
type ContextEntryOutput struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url,omitempty"`
}

// ContextOutput is the output schema for the retrieve_context tool.
type ContextOutput struct {
	Entries []ContextEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// InjectInput is the input schema for the inject_knowledge tool.
type InjectInput struct {
	Title   string `json:"title" jsonschema:"document title"`
	Content string `json:"content" jsonschema:"document body text"`
	URL     string `json:"url,omitempty" jsonschema:"public address of the document, if any"`
}

// InjectOutput is the output schema for the inject_knowledge tool.
type InjectOutput struct {
	Title       string `json:"title"`
	Fingerprint string `json:"fingerprint"`
}

// ChatMessageInput is a prior message of the conversation.
type ChatMessageInput struct {
	Role    string `json:"role" jsonschema:"one of system, user or assistant"`
	Content string `json:"content"`
}

// ChatInput is the input schema for the send_chat_message tool.
type ChatInput struct {
	Message string             `json:"message" jsonschema:"the user's message"`
	History []ChatMessageInput `json:"history,omitempty" jsonschema:"prior messages, oldest first"`
}

// CitationOutput is a source of a chat answer.
type CitationOutput struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Kind  string `json:"kind"`
}

// ChatOutput is the output schema for the send_chat_message tool.
type ChatOutput struct {
	Message    string           `json:"message"`
	Sources    []string         `json:"sources"`
	Citations  []CitationOutput `json:"citations"`
	TokensUsed int              `json:"tokens_used"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer_question",
		Description: "Answer a home buying question from the local knowledge base",
	}, s.handleAnswer)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve_context",
		Description: "Retrieve the passages of the knowledge base most relevant to a query",
	}, s.handleContext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "inject_knowledge",
		Description: "Add a document to the knowledge base",
	}, s.handleInject)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "send_chat_message",
		Description: "Send a message to the home buying assistant with optional conversation history",
	}, s.handleChat)
}

func (s *Server) handleAnswer(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	result := s.ports.Engine.AnswerQuestion(input.Question)
	return nil, AnswerOutput{Answer: result.Answer, Sources: nonNil(result.Sources)}, nil
}

func (s *Server) handleContext(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ContextInput,
) (*mcp.CallToolResult, ContextOutput, error) {
	entries := s.ports.Engine.RetrieveContext(input.Query, input.MaxDocs)

	output := ContextOutput{
		Entries: make([]ContextEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		output.Entries[i] = ContextEntryOutput{Title: e.Title, Snippet: e.Snippet, URL: e.URL}
	}
	return nil, output, nil
}

func (s *Server) handleInject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InjectInput,
) (*mcp.CallToolResult, InjectOutput, error) {
	doc := core.Document{Title: input.Title, Content: input.Content, URL: input.URL}
	if err := s.ports.Engine.InjectDocument(ctx, doc); err != nil {
		return nil, InjectOutput{}, err
	}
	s.logger.Info("document injected", "title", doc.Title)
	return nil, InjectOutput{Title: doc.Title, Fingerprint: fmt.Sprintf("%016x", uint64(doc.Fingerprint()))}, nil
}

func (s *Server) handleChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	history := make([]core.ConversationMessage, len(input.History))
	for i, m := range input.History {
		msg := core.ConversationMessage{Role: core.Role(m.Role), Content: m.Content}
		if err := core.ValidateMessage(msg); err != nil {
			return nil, ChatOutput{}, fmt.Errorf("%w: entry %d: %w", ErrInvalidHistory, i, err)
		}
		history[i] = msg
	}

	resp := s.ports.Engine.SendChatMessage(ctx, input.Message, history)

	output := ChatOutput{
		Message:    resp.Message,
		Sources:    nonNil(resp.Sources),
		Citations:  make([]CitationOutput, len(resp.Citations)),
		TokensUsed: resp.TokensUsed,
	}
	for i, c := range resp.Citations {
		output.Citations[i] = CitationOutput{Title: c.Title, URL: c.URL, Kind: string(c.Kind)}
	}
	return nil, output, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
