package chat

import "errors"

var (
	// ErrAnswererRequired is returned when an orchestrator has no local pipeline.
	ErrAnswererRequired = errors.New("local answerer required")

	// ErrOrchestratorRequired is returned when a session has no orchestrator.
	ErrOrchestratorRequired = errors.New("orchestrator required")

	// ErrRateLimited reports a remote call skipped by the request budget.
	ErrRateLimited = errors.New("remote request budget exhausted")
)
