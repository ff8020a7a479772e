// Package chat turns a user message and its conversation history into an
// answer. An Orchestrator builds the prompt from the system instructions,
// retrieved knowledge and recent history, asks a remote ai.ChatModel when
// one is configured and falls back to the local search pipeline whenever
// the remote call is missing, over budget, slow or fails.
//
// Session layers conversation bookkeeping on top: stored messages, a
// display summary and rotation to a new conversation when the estimated
// token count grows too large.
package chat
