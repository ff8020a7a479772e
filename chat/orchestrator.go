// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/core"
	"golang.org/x/time/rate"
)

const (
	// DefaultHistoryWindow is the number of prior messages sent with a turn.
	DefaultHistoryWindow = 10

	// DefaultContextDocs is the number of documents retrieved as context.
	DefaultContextDocs = 3
)

// Answerer is the local question answering pipeline.
// *search.Searcher implements it.
type Answerer interface {
	AnswerQuestion(query string) core.QAResult
	RetrieveContext(query string, maxDocs int) []core.ContextEntry
}

// Turn is the full record of one orchestrated message.
type Turn struct {
	RequestID string
	Context   core.ConversationContext
	Remote    RemoteResult
	Response  core.ChatResponse
}

// Orchestrator answers chat messages with a remote model when one is
// available and with the local pipeline otherwise. It never fails: every
// remote failure resolves to the local answer.
type Orchestrator struct {
	answerer      Answerer
	model         ai.ChatModel
	systemPrompt  string
	historyWindow int
	contextDocs   int
	timeout       time.Duration
	retries       int
	retryDelay    time.Duration
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithChatModel sets the remote model. Without one every message is
// answered locally.
func WithChatModel(model ai.ChatModel) Option {
	return func(o *Orchestrator) {
		o.model = model
	}
}

// WithSystemPrompt replaces SystemPrompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Orchestrator) {
		o.systemPrompt = prompt
	}
}

// WithHistoryWindow sets how many prior messages are sent.
// Default is DefaultHistoryWindow.
func WithHistoryWindow(n int) Option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.historyWindow = n
		}
	}
}

// WithContextDocs sets how many documents are retrieved as context.
// Default is DefaultContextDocs.
func WithContextDocs(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.contextDocs = n
		}
	}
}

// WithTimeout bounds each remote call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithRetry retries transport failures up to retries more times, waiting
// delay before the first retry and doubling it after each. Retries share
// the WithTimeout budget. Default is no retries.
func WithRetry(retries int, delay time.Duration) Option {
	return func(o *Orchestrator) {
		o.retries = max(retries, 0)
		o.retryDelay = max(delay, 0)
	}
}

// WithRateLimit allows rpm remote calls per minute with the given burst.
// Calls over budget are answered locally. rpm <= 0 removes the limit.
func WithRateLimit(rpm, burst int) Option {
	return func(o *Orchestrator) {
		if rpm <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), max(burst, 1))
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// NewOrchestrator creates an orchestrator over the local pipeline.
func NewOrchestrator(answerer Answerer, opts ...Option) (*Orchestrator, error) {
	if answerer == nil {
		return nil, ErrAnswererRequired
	}

	o := &Orchestrator{
		answerer:      answerer,
		systemPrompt:  SystemPrompt,
		historyWindow: DefaultHistoryWindow,
		contextDocs:   DefaultContextDocs,
		logger:        slog.Default().With("component", "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// RemoteConfigured reports whether a remote model is set.
func (o *Orchestrator) RemoteConfigured() bool {
	return o.model != nil
}

// SendChatMessage answers userMessage in the context of history.
func (o *Orchestrator) SendChatMessage(ctx context.Context, userMessage string, history []core.ConversationMessage) core.ChatResponse {
	return o.Converse(ctx, userMessage, history).Response
}

// Converse answers userMessage and returns the full turn record.
func (o *Orchestrator) Converse(ctx context.Context, userMessage string, history []core.ConversationMessage) Turn {
	turn := Turn{RequestID: uuid.NewString()}
	logger := o.logger.With("request_id", turn.RequestID)

	if o.model == nil {
		logger.Debug("remote model not configured, answering locally")
		turn.Remote = RemoteResult{Failure: FailureNotConfigured, Err: ai.ErrNotConfigured}
		turn.Response = o.localAnswer(userMessage)
		return turn
	}

	turn.Context = o.BuildContext(userMessage, history)
	turn.Remote = o.attemptRemote(ctx, turn.Context.Messages)
	if !turn.Remote.Succeeded() {
		logger.Warn("remote model failed, answering locally", "reason", turn.Remote.Failure, "err", turn.Remote.Err)
		turn.Response = o.localAnswer(userMessage)
		return turn
	}

	sources, citations := ParseSources(turn.Context.KnowledgeContext)
	turn.Response = core.ChatResponse{
		Message:    turn.Remote.Answer,
		Sources:    sources,
		Citations:  citations,
		TokensUsed: turn.Remote.TokensUsed,
	}
	logger.Debug("remote answer", "sources", len(sources), "tokens", turn.Remote.TokensUsed)
	return turn
}

// BuildContext assembles the prompt for one turn: the system prompt, the
// retrieved knowledge when there is any, the most recent history and the
// user message.
func (o *Orchestrator) BuildContext(userMessage string, history []core.ConversationMessage) core.ConversationContext {
	knowledge := FormatKnowledgeContext(o.answerer.RetrieveContext(userMessage, o.contextDocs))

	recent := o.recentHistory(history)
	messages := make([]core.ConversationMessage, 0, len(recent)+3)
	messages = append(messages, core.SystemMessage(o.systemPrompt))
	if knowledge != "" {
		messages = append(messages, core.SystemMessage(knowledgeHeader+knowledge))
	}
	messages = append(messages, recent...)
	messages = append(messages, core.UserMessage(userMessage))

	return core.ConversationContext{
		Messages:         messages,
		KnowledgeContext: knowledge,
	}
}

// recentHistory returns the last historyWindow valid messages of history.
func (o *Orchestrator) recentHistory(history []core.ConversationMessage) []core.ConversationMessage {
	valid := make([]core.ConversationMessage, 0, len(history))
	for _, msg := range history {
		if err := core.ValidateMessage(msg); err != nil {
			o.logger.Debug("dropping history message", "err", err)
			continue
		}
		valid = append(valid, msg)
	}
	if len(valid) > o.historyWindow {
		valid = valid[len(valid)-o.historyWindow:]
	}
	return valid
}

// localAnswer runs the local pipeline. Local answers use no tokens.
func (o *Orchestrator) localAnswer(userMessage string) core.ChatResponse {
	result := o.answerer.AnswerQuestion(userMessage)
	return core.ChatResponse{
		Message:    result.Answer,
		Sources:    result.Sources,
		TokensUsed: 0,
	}
}
