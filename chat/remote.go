package chat

import (
	"context"
	"errors"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/core"
)

// Failure names why a remote attempt produced no answer.
type Failure string

const (
	FailureNone          Failure = "none"
	FailureNotConfigured Failure = "not_configured"
	FailureRateLimited   Failure = "rate_limited"
	FailureTransport     Failure = "transport"
	FailureEmptyResponse Failure = "empty_response"
	FailureTimeout       Failure = "timeout"
)

// RemoteResult is the outcome of one remote attempt. Answer and TokensUsed
// are set only when Failure is FailureNone.
type RemoteResult struct {
	Answer     string
	TokensUsed int
	Failure    Failure
	Err        error
}

// Succeeded reports whether the remote model produced an answer.
func (r RemoteResult) Succeeded() bool {
	return r.Failure == FailureNone
}

// attemptRemote makes at most one call to the chat model.
func (o *Orchestrator) attemptRemote(ctx context.Context, messages []core.ConversationMessage) RemoteResult {
	if o.model == nil {
		return RemoteResult{Failure: FailureNotConfigured, Err: ai.ErrNotConfigured}
	}
	if o.limiter != nil && !o.limiter.Allow() {
		return RemoteResult{Failure: FailureRateLimited, Err: ErrRateLimited}
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	var completion *ai.Completion
	err := retryWithBackoff(ctx, o.retries+1, o.retryDelay, func() error {
		var err error
		completion, err = o.model.Complete(ctx, messages)
		return err
	}, transient)
	switch {
	case err == nil && (completion == nil || completion.Text == ""):
		return RemoteResult{Failure: FailureEmptyResponse, Err: ai.ErrEmptyResponse}
	case err == nil:
		return RemoteResult{Answer: completion.Text, TokensUsed: max(completion.TotalTokens, 0), Failure: FailureNone}
	case errors.Is(err, ai.ErrEmptyResponse):
		return RemoteResult{Failure: FailureEmptyResponse, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return RemoteResult{Failure: FailureTimeout, Err: err}
	default:
		return RemoteResult{Failure: FailureTransport, Err: err}
	}
}
