package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/homeqa/core"
)

// Session is a single running conversation. It keeps the stored history,
// sends each turn through an Orchestrator and starts a fresh conversation
// once the history grows past NewConversationTokenLimit.
type Session struct {
	orchestrator *Orchestrator
	logger       *slog.Logger

	mu       sync.Mutex
	id       string
	messages []StoredMessage
}

// NewSession creates an empty session.
func NewSession(orchestrator *Orchestrator) (*Session, error) {
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}
	return &Session{
		orchestrator: orchestrator,
		logger:       orchestrator.logger.With("component", "session"),
		id:           uuid.NewString(),
	}, nil
}

// ID returns the current conversation ID.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Messages returns a copy of the current conversation.
func (s *Session) Messages() []StoredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Summary returns the display title of the current conversation.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ConversationSummary(s.messages)
}

// Send answers message and records both sides of the exchange.
func (s *Session) Send(ctx context.Context, message string) core.ChatResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := ToChatHistory(s.messages)
	if ShouldStartNewConversation(append(history, core.UserMessage(message))) {
		s.logger.Info("conversation too long, starting a new one", "previous", s.id)
		s.id = uuid.NewString()
		s.messages = nil
		history = nil
	}

	response := s.orchestrator.SendChatMessage(ctx, message, history)

	now := time.Now().UTC()
	s.messages = append(s.messages,
		StoredMessage{
			ID:             uuid.NewString(),
			ConversationID: s.id,
			Role:           core.RoleUser,
			Content:        message,
			CreatedAt:      now,
		},
		StoredMessage{
			ID:             uuid.NewString(),
			ConversationID: s.id,
			Role:           core.RoleAssistant,
			Content:        response.Message,
			Sources:        storedSources(response),
			TokensUsed:     response.TokensUsed,
			CreatedAt:      now,
		},
	)
	return response
}

// storedSources returns the citations of response. Local answers carry
// only source titles, which are recorded as internal citations.
func storedSources(response core.ChatResponse) []core.Citation {
	if len(response.Citations) > 0 {
		return response.Citations
	}
	if len(response.Sources) == 0 {
		return nil
	}
	out := make([]core.Citation, len(response.Sources))
	for i, title := range response.Sources {
		out[i] = core.Citation{Title: title, Kind: core.CitationInternal}
	}
	return out
}

// Reset starts a new, empty conversation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	s.messages = nil
}
