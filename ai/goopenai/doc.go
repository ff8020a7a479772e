// Package goopenai provides an ai.ChatModel backed by the
// sashabaranov/go-openai client. Select it with ai.WithBackend(ai.BackendGoOpenAI).
package goopenai
