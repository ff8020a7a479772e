package goopenai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/core"
	openai "github.com/sashabaranov/go-openai"
)

// ChatModel implements ai.ChatModel using sashabaranov/go-openai.
type ChatModel struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	topP        float32
	logger      *slog.Logger
}

var _ ai.ChatModel = (*ChatModel)(nil)

func newChatModel(config *ai.Config) (*ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !config.Configured() {
		return nil, ai.ErrNotConfigured
	}

	cfg := openai.DefaultConfig(config.APIKey)
	cfg.BaseURL = config.Host

	return &ChatModel{
		client:      openai.NewClientWithConfig(cfg),
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: float32(config.Temperature),
		topP:        float32(config.TopP),
		logger:      slog.Default().With("component", "goopenai-chat"),
	}, nil
}

// NewChatModel creates a chat model using the provided configuration.
// Returns ai.ErrNotConfigured when the configuration has no API key.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	return newChatModel(config)
}

// Complete sends the conversation to the model and returns the first choice.
func (m *ChatModel) Complete(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       m.model,
		MaxTokens:   m.maxTokens,
		Temperature: m.temperature,
		TopP:        m.topP,
	}

	req.Messages = make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    chatRole(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ai.ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, ai.ErrEmptyResponse
	}

	m.logger.Debug("completion received", "messages", len(messages), "tokens", resp.Usage.TotalTokens)
	return &ai.Completion{Text: text, TotalTokens: resp.Usage.TotalTokens}, nil
}

// Close is a no-op; the HTTP client needs no cleanup.
func (m *ChatModel) Close() error {
	return nil
}

func chatRole(role core.Role) string {
	switch role {
	case core.RoleSystem:
		return openai.ChatMessageRoleSystem
	case core.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
