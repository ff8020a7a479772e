package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/homeqa/ai"
	"github.com/poiesic/homeqa/ai/mock"
	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCorpus []core.Document

func (c staticCorpus) Documents() []core.Document {
	return c
}

var mortgageBasics = core.Document{
	Title:   "Mortgage Basics",
	Content: "A pre-approval letter shows sellers you are serious about buying. Get pre-approved before house hunting.",
}

var escrowGuide = core.Document{
	Title:   "Escrow Guide",
	Content: "Escrow holds your deposit while inspections and financing are completed.",
	URL:     "https://www.notion.so/escrow",
}

// fixedAnswerer returns canned results so prompt assembly can be checked
// without the search pipeline.
type fixedAnswerer struct {
	entries []core.ContextEntry
	result  core.QAResult
	asked   []string
}

func (f *fixedAnswerer) AnswerQuestion(query string) core.QAResult {
	f.asked = append(f.asked, query)
	return f.result
}

func (f *fixedAnswerer) RetrieveContext(string, int) []core.ContextEntry {
	return f.entries
}

func newTestOrchestrator(t *testing.T, opts ...Option) (*Orchestrator, *search.Searcher) {
	t.Helper()
	searcher, err := search.NewSearcher(staticCorpus{mortgageBasics, escrowGuide})
	require.NoError(t, err)
	o, err := NewOrchestrator(searcher, opts...)
	require.NoError(t, err)
	return o, searcher
}

func TestNewOrchestrator(t *testing.T) {
	t.Run("requires answerer", func(t *testing.T) {
		_, err := NewOrchestrator(nil)
		assert.ErrorIs(t, err, ErrAnswererRequired)
	})

	t.Run("defaults", func(t *testing.T) {
		o, _ := newTestOrchestrator(t)
		assert.Equal(t, DefaultHistoryWindow, o.historyWindow)
		assert.Equal(t, DefaultContextDocs, o.contextDocs)
		assert.Equal(t, SystemPrompt, o.systemPrompt)
		assert.Nil(t, o.limiter)
		assert.False(t, o.RemoteConfigured())
	})

	t.Run("options", func(t *testing.T) {
		logger := slog.New(slog.DiscardHandler)
		o, _ := newTestOrchestrator(t,
			WithChatModel(mock.NewMockChatModel()),
			WithHistoryWindow(4),
			WithContextDocs(2),
			WithSystemPrompt("be brief"),
			WithTimeout(time.Second),
			WithRateLimit(60, 0),
			WithLogger(logger),
		)
		assert.True(t, o.RemoteConfigured())
		assert.Equal(t, 4, o.historyWindow)
		assert.Equal(t, 2, o.contextDocs)
		assert.Equal(t, "be brief", o.systemPrompt)
		assert.Equal(t, time.Second, o.timeout)
		require.NotNil(t, o.limiter)
		assert.Equal(t, 1, o.limiter.Burst())
		assert.Same(t, logger, o.logger)
	})

	t.Run("non-positive rate removes limit", func(t *testing.T) {
		o, _ := newTestOrchestrator(t, WithRateLimit(60, 1), WithRateLimit(0, 1))
		assert.Nil(t, o.limiter)
	})
}

func TestBuildContext(t *testing.T) {
	t.Run("message order", func(t *testing.T) {
		answerer := &fixedAnswerer{entries: []core.ContextEntry{
			{Title: "Mortgage Basics", Snippet: "Get pre-approved."},
		}}
		o, err := NewOrchestrator(answerer)
		require.NoError(t, err)

		history := []core.ConversationMessage{
			core.UserMessage("hi"),
			core.AssistantMessage("hello"),
		}
		cc := o.BuildContext("what is pre-approval?", history)

		require.Len(t, cc.Messages, 5)
		assert.Equal(t, core.SystemMessage(SystemPrompt), cc.Messages[0])
		assert.Equal(t, core.RoleSystem, cc.Messages[1].Role)
		assert.Equal(t, knowledgeHeader+"Source: Mortgage Basics\nGet pre-approved.", cc.Messages[1].Content)
		assert.Equal(t, history, cc.Messages[2:4])
		assert.Equal(t, core.UserMessage("what is pre-approval?"), cc.Messages[4])
		assert.Equal(t, "Source: Mortgage Basics\nGet pre-approved.", cc.KnowledgeContext)
	})

	t.Run("no knowledge message when nothing retrieved", func(t *testing.T) {
		o, err := NewOrchestrator(&fixedAnswerer{})
		require.NoError(t, err)

		cc := o.BuildContext("hello", nil)
		require.Len(t, cc.Messages, 2)
		assert.Equal(t, core.RoleSystem, cc.Messages[0].Role)
		assert.Equal(t, core.UserMessage("hello"), cc.Messages[1])
		assert.Empty(t, cc.KnowledgeContext)
	})

	t.Run("history truncated to window", func(t *testing.T) {
		o, err := NewOrchestrator(&fixedAnswerer{})
		require.NoError(t, err)

		var history []core.ConversationMessage
		for i := range 15 {
			history = append(history, core.UserMessage(fmt.Sprintf("message %d", i)))
		}
		cc := o.BuildContext("latest", history)

		require.Len(t, cc.Messages, 1+DefaultHistoryWindow+1)
		assert.Equal(t, "message 5", cc.Messages[1].Content)
		assert.Equal(t, "message 14", cc.Messages[DefaultHistoryWindow].Content)
	})

	t.Run("invalid history roles dropped", func(t *testing.T) {
		o, err := NewOrchestrator(&fixedAnswerer{})
		require.NoError(t, err)

		history := []core.ConversationMessage{
			{Role: "tool", Content: "ignored"},
			core.AssistantMessage("kept"),
		}
		cc := o.BuildContext("q", history)
		require.Len(t, cc.Messages, 3)
		assert.Equal(t, "kept", cc.Messages[1].Content)
	})
}

func TestSendChatMessage(t *testing.T) {
	ctx := context.Background()
	question := "What is pre-approval?"

	t.Run("no model answers locally", func(t *testing.T) {
		o, searcher := newTestOrchestrator(t)

		resp := o.SendChatMessage(ctx, question, nil)
		local := searcher.AnswerQuestion(question)
		assert.Equal(t, local.Answer, resp.Message)
		assert.Equal(t, local.Sources, resp.Sources)
		assert.Zero(t, resp.TokensUsed)
	})

	t.Run("remote success", func(t *testing.T) {
		model := mock.NewMockChatModelWithReply("Get a pre-approval letter first.", 42)
		o, _ := newTestOrchestrator(t, WithChatModel(model))

		resp := o.SendChatMessage(ctx, question, []core.ConversationMessage{core.UserMessage("hi")})
		assert.Equal(t, "Get a pre-approval letter first.", resp.Message)
		assert.Equal(t, 42, resp.TokensUsed)
		assert.Equal(t, []string{"Mortgage Basics"}, resp.Sources)
		require.Len(t, resp.Citations, 1)
		assert.Equal(t, core.CitationInternal, resp.Citations[0].Kind)

		assert.Equal(t, 1, model.CallCount())
		sent := model.LastMessages()
		require.Len(t, sent, 4)
		assert.Equal(t, core.UserMessage(question), sent[3])
	})

	t.Run("remote success cites urls", func(t *testing.T) {
		model := mock.NewMockChatModelWithReply("Escrow protects your deposit.", 7)
		o, _ := newTestOrchestrator(t, WithChatModel(model))

		resp := o.SendChatMessage(ctx, "How does escrow hold my deposit?", nil)
		assert.Equal(t, []string{"Escrow Guide"}, resp.Sources)
		require.Len(t, resp.Citations, 1)
		assert.Equal(t, core.Citation{
			Title: "Escrow Guide",
			URL:   "https://www.notion.so/escrow",
			Kind:  core.CitationOnline,
		}, resp.Citations[0])
	})

	t.Run("remote failures fall back to local answer", func(t *testing.T) {
		tests := []struct {
			name    string
			model   *mock.MockChatModel
			opts    []Option
			failure Failure
		}{
			{
				name:    "transport error",
				model:   mock.NewFailingMockChatModel(errors.New("connection refused")),
				failure: FailureTransport,
			},
			{
				name:    "empty response error",
				model:   mock.NewFailingMockChatModel(fmt.Errorf("call: %w", ai.ErrEmptyResponse)),
				failure: FailureEmptyResponse,
			},
			{
				name:    "blank completion",
				model:   mock.NewMockChatModelWithReply("", 3),
				failure: FailureEmptyResponse,
			},
			{
				name: "timeout",
				model: &mock.MockChatModel{
					CompleteFunc: func(ctx context.Context, _ []core.ConversationMessage) (*ai.Completion, error) {
						<-ctx.Done()
						return nil, ctx.Err()
					},
				},
				opts:    []Option{WithTimeout(10 * time.Millisecond)},
				failure: FailureTimeout,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				o, searcher := newTestOrchestrator(t, append(tt.opts, WithChatModel(tt.model))...)

				turn := o.Converse(ctx, question, nil)
				assert.Equal(t, tt.failure, turn.Remote.Failure)
				assert.Error(t, turn.Remote.Err)
				assert.NotEmpty(t, turn.RequestID)

				local := searcher.AnswerQuestion(question)
				assert.Equal(t, local.Answer, turn.Response.Message)
				assert.Equal(t, local.Sources, turn.Response.Sources)
				assert.Zero(t, turn.Response.TokensUsed)
			})
		}
	})

	t.Run("rate limited calls answer locally", func(t *testing.T) {
		model := mock.NewMockChatModelWithReply("remote", 1)
		o, searcher := newTestOrchestrator(t, WithChatModel(model), WithRateLimit(1, 1))

		first := o.Converse(ctx, question, nil)
		assert.True(t, first.Remote.Succeeded())

		second := o.Converse(ctx, question, nil)
		assert.Equal(t, FailureRateLimited, second.Remote.Failure)
		assert.ErrorIs(t, second.Remote.Err, ErrRateLimited)
		assert.Equal(t, searcher.AnswerQuestion(question).Answer, second.Response.Message)
		assert.Equal(t, 1, model.CallCount())
	})

	t.Run("out of scope question without model", func(t *testing.T) {
		o, _ := newTestOrchestrator(t)
		resp := o.SendChatMessage(ctx, "What is the capital of France?", nil)
		assert.Equal(t, search.ScopeGuardAnswer, resp.Message)
		assert.Empty(t, resp.Sources)
	})

	t.Run("not configured outcome", func(t *testing.T) {
		answerer := &fixedAnswerer{result: core.QAResult{Answer: "local", Sources: []string{"Doc"}}}
		o, err := NewOrchestrator(answerer)
		require.NoError(t, err)

		turn := o.Converse(ctx, "q", nil)
		assert.Equal(t, FailureNotConfigured, turn.Remote.Failure)
		assert.ErrorIs(t, turn.Remote.Err, ai.ErrNotConfigured)
		assert.Equal(t, "local", turn.Response.Message)
		assert.Equal(t, []string{"q"}, answerer.asked)
	})
}
