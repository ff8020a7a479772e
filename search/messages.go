package search

// Fixed user-facing answers of the local pipeline.
const (
	// ScopeGuardAnswer is returned when no document clears the confidence gate.
	ScopeGuardAnswer = "I can help you with questions about the home buying process, including financial preparation, finding properties, making offers, the escrow process, working with real estate professionals, and understanding timelines. Please ask about specific aspects of buying a home that you'd like to learn more about."

	// NoSnippetAnswer is returned when relevant documents were found but no
	// line of them matched the question.
	NoSnippetAnswer = "I found some relevant information but couldn't extract specific details. Please try rephrasing your question or ask about specific topics like mortgage pre-approval, home inspections, making offers, or working with real estate agents."

	// BriefAnswer replaces synthesized answers that are too short to help.
	BriefAnswer = "Found relevant information in the documentation, but the details are brief. Please ask for more specific information."
)
