// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ChatModel implements ai.ChatModel using langchaingo's OpenAI client.
type ChatModel struct {
	client      llms.Model
	maxTokens   int
	temperature float64
	topP        float64
	logger      *slog.Logger
}

var _ ai.ChatModel = (*ChatModel)(nil)

// newChatModel is an internal constructor that returns the concrete type.
func newChatModel(config *ai.Config) (*ChatModel, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !config.Configured() {
		return nil, ai.ErrNotConfigured
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &ChatModel{
		client:      client,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		topP:        config.TopP,
		logger:      slog.Default().With("component", "openai-chat"),
	}, nil
}

// NewChatModel creates a chat model using the provided configuration.
// Returns ai.ErrNotConfigured when the configuration has no API key.
//
// Returns ai.ChatModel interface to enforce abstraction.
func NewChatModel(config *ai.Config) (ai.ChatModel, error) {
	return newChatModel(config)
}

// Complete sends the conversation to the model and returns the first choice.
func (m *ChatModel) Complete(ctx context.Context, messages []core.ConversationMessage) (*ai.Completion, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.TextParts(messageType(msg.Role), msg.Content))
	}

	response, err := m.client.GenerateContent(ctx, content,
		llms.WithMaxTokens(m.maxTokens),
		llms.WithTemperature(m.temperature),
		llms.WithTopP(m.topP),
	)
	if err != nil {
		if errors.Is(err, openai.ErrEmptyResponse) {
			return nil, ai.ErrEmptyResponse
		}
		return nil, err
	}

	if len(response.Choices) < 1 {
		m.logger.Debug("no choices returned from model")
		return nil, ai.ErrEmptyResponse
	}

	choice := response.Choices[0]
	text := strings.TrimSpace(choice.Content)
	if text == "" {
		return nil, ai.ErrEmptyResponse
	}

	completion := &ai.Completion{Text: text}
	if total, ok := choice.GenerationInfo["TotalTokens"].(int); ok {
		completion.TotalTokens = total
	}

	m.logger.Debug("completion received", "messages", len(messages), "tokens", completion.TotalTokens)
	return completion, nil
}

// Close releases resources held by the model.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (m *ChatModel) Close() error {
	m.logger.Debug("closing OpenAI chat model")
	return nil
}

// messageType maps a conversation role to a langchaingo message type.
func messageType(role core.Role) llms.ChatMessageType {
	switch role {
	case core.RoleSystem:
		return llms.ChatMessageTypeSystem
	case core.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
