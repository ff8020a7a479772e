package ai

// Completion is a chat model reply.
type Completion struct {
	// Text is the reply content.
	Text string

	// TotalTokens is the prompt plus completion token count reported by the
	// API, or 0 when the API does not report usage.
	TotalTokens int
}
