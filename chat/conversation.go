package chat

import (
	"time"

	"github.com/poiesic/homeqa/core"
)

// summaryLimit is the number of runes kept by ConversationSummary.
const summaryLimit = 50

// StoredMessage is one message of a recorded conversation.
type StoredMessage struct {
	ID             string
	ConversationID string
	Role           core.Role
	Content        string
	Sources        []core.Citation
	TokensUsed     int
	CreatedAt      time.Time
}

// ToChatHistory converts stored messages to prompt history. System
// messages are dropped; the orchestrator adds its own.
func ToChatHistory(stored []StoredMessage) []core.ConversationMessage {
	history := make([]core.ConversationMessage, 0, len(stored))
	for _, msg := range stored {
		if msg.Role == core.RoleSystem {
			continue
		}
		history = append(history, core.ConversationMessage{Role: msg.Role, Content: msg.Content})
	}
	return history
}

// ConversationSummary returns the first user message, truncated, as a
// display title.
func ConversationSummary(stored []StoredMessage) string {
	for _, msg := range stored {
		if msg.Role != core.RoleUser {
			continue
		}
		runes := []rune(msg.Content)
		if len(runes) > summaryLimit {
			return string(runes[:summaryLimit]) + "..."
		}
		return msg.Content
	}
	return "New conversation"
}
