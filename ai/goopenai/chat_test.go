package goopenai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, status int, body string, last *chatRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if last != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(last))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func completionBody(content string) string {
	return fmt.Sprintf(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini",`+
		`"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}],`+
		`"usage":{"prompt_tokens":20,"completion_tokens":8,"total_tokens":28}}`, content)
}

func testConfig(host string) *ai.Config {
	return ai.NewConfig(ai.WithBackend(ai.BackendGoOpenAI), ai.WithHost(host), ai.WithAPIKey("sk-test"))
}

func TestNewChatModel(t *testing.T) {
	_, err := NewChatModel(ai.NewConfig(ai.WithBackend(ai.BackendGoOpenAI)))
	assert.ErrorIs(t, err, ai.ErrNotConfigured)

	model, err := NewChatModel(testConfig("http://localhost"))
	require.NoError(t, err)
	assert.NoError(t, model.Close())
}

func TestChatModelComplete(t *testing.T) {
	messages := []core.ConversationMessage{
		core.SystemMessage("You are a helpful assistant."),
		core.UserMessage("What is an appraisal?"),
	}

	t.Run("success", func(t *testing.T) {
		var req chatRequest
		server := newCompletionServer(t, http.StatusOK, completionBody("An appraisal confirms value."), &req)

		model, err := NewChatModel(testConfig(server.URL))
		require.NoError(t, err)

		completion, err := model.Complete(context.Background(), messages)
		require.NoError(t, err)
		assert.Equal(t, "An appraisal confirms value.", completion.Text)
		assert.Equal(t, 28, completion.TotalTokens)

		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 1000, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-6)
		assert.InDelta(t, 1.0, req.TopP, 1e-6)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "What is an appraisal?", req.Messages[1].Content)
	})

	t.Run("no choices", func(t *testing.T) {
		server := newCompletionServer(t, http.StatusOK,
			`{"id":"chatcmpl-1","object":"chat.completion","choices":[],"usage":{"total_tokens":0}}`, nil)

		model, err := NewChatModel(testConfig(server.URL))
		require.NoError(t, err)

		_, err = model.Complete(context.Background(), messages)
		assert.ErrorIs(t, err, ai.ErrEmptyResponse)
	})

	t.Run("blank content", func(t *testing.T) {
		server := newCompletionServer(t, http.StatusOK, completionBody("\n"), nil)

		model, err := NewChatModel(testConfig(server.URL))
		require.NoError(t, err)

		_, err = model.Complete(context.Background(), messages)
		assert.ErrorIs(t, err, ai.ErrEmptyResponse)
	})

	t.Run("api error", func(t *testing.T) {
		server := newCompletionServer(t, http.StatusInternalServerError,
			`{"error":{"message":"upstream failure","type":"server_error"}}`, nil)

		model, err := NewChatModel(testConfig(server.URL))
		require.NoError(t, err)

		_, err = model.Complete(context.Background(), messages)
		assert.ErrorContains(t, err, "create openai chat completion")
	})
}
