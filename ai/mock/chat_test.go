package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/homeqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockChatModel(t *testing.T) {
	ctx := context.Background()
	messages := []core.ConversationMessage{
		core.SystemMessage("system"),
		core.UserMessage("first question"),
		core.AssistantMessage("first answer"),
		core.UserMessage("second question"),
	}

	t.Run("default reply", func(t *testing.T) {
		m := NewMockChatModel()
		completion, err := m.Complete(ctx, messages)
		require.NoError(t, err)
		assert.Equal(t, "mock reply: second question", completion.Text)
		assert.Equal(t, 4, completion.TotalTokens)
		assert.Equal(t, 1, m.CallCount())
		assert.Equal(t, messages, m.LastMessages())
	})

	t.Run("fixed reply", func(t *testing.T) {
		m := NewMockChatModelWithReply("fixed", 7)
		completion, err := m.Complete(ctx, messages)
		require.NoError(t, err)
		assert.Equal(t, "fixed", completion.Text)
		assert.Equal(t, 7, completion.TotalTokens)
	})

	t.Run("failure", func(t *testing.T) {
		boom := errors.New("boom")
		m := NewFailingMockChatModel(boom)
		_, err := m.Complete(ctx, messages)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, m.CallCount())
	})

	t.Run("reset", func(t *testing.T) {
		m := NewMockChatModelWithReply("fixed", 1)
		_, _ = m.Complete(ctx, messages)
		require.NoError(t, m.Close())
		assert.True(t, m.Closed())

		m.Reset()
		assert.Zero(t, m.CallCount())
		assert.Empty(t, m.LastMessages())
		assert.False(t, m.Closed())
		assert.Nil(t, m.CompleteFunc)
	})
}
