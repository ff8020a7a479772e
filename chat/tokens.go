package chat

import (
	"unicode/utf8"

	"github.com/poiesic/homeqa/core"
)

// NewConversationTokenLimit is the estimated conversation size above which
// a fresh conversation should be started.
const NewConversationTokenLimit = 100000

// EstimateTokens approximates the token count of text at four characters
// per token, rounded up.
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

// ShouldStartNewConversation reports whether the estimated size of
// messages exceeds NewConversationTokenLimit.
func ShouldStartNewConversation(messages []core.ConversationMessage) bool {
	total := 0
	for _, msg := range messages {
		total += EstimateTokens(msg.Content)
	}
	return total > NewConversationTokenLimit
}
