// Package chat owns the conversation lifecycle: user resolution, scoped
// conversation lookup or creation, the user/assistant turn pair and the
// refreshed read returned to the caller.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seo-optimizer/backend/internal/auth"
	"github.com/seo-optimizer/backend/internal/model/chat"
	"github.com/seo-optimizer/backend/internal/model/user"
	"github.com/seo-optimizer/backend/internal/store"
)

// ErrConversationNotFound covers both unknown ids and conversations owned
// by another user; callers cannot distinguish the two.
var ErrConversationNotFound = errors.New("conversation not found")

// Analyzer produces the assistant's reply for one turn. Implementations
// must not fail: a degraded analysis is returned as text.
type Analyzer interface {
	Analyze(ctx context.Context, userMessage string, history []chat.Message, modelID string) string
}

// Service coordinates the stores and the agent for each request.
type Service struct {
	users         *store.UserStore
	conversations *store.ConversationStore
	messages      *store.MessageStore
	agent         Analyzer
}

// SendMessageResult pairs the assistant message with the refreshed
// conversation it belongs to.
type SendMessageResult struct {
	Message      *chat.Message      `json:"message"`
	Conversation *chat.Conversation `json:"conversation"`
}

// NewService wires the conversation service.
func NewService(users *store.UserStore, conversations *store.ConversationStore, messages *store.MessageStore, agent Analyzer) *Service {
	return &Service{
		users:         users,
		conversations: conversations,
		messages:      messages,
		agent:         agent,
	}
}

// ListConversations returns the caller's conversations with messages
// attached, most recently updated first.
func (s *Service) ListConversations(ctx context.Context, claims auth.Claims) ([]chat.Conversation, error) {
	u, err := s.resolveUser(claims)
	if err != nil {
		return nil, err
	}
	return s.conversations.FindByUser(u.ID)
}

// GetConversation returns one conversation scoped to the caller, messages
// ordered oldest-first.
func (s *Service) GetConversation(ctx context.Context, id string, claims auth.Claims) (*chat.Conversation, error) {
	u, err := s.resolveUser(claims)
	if err != nil {
		return nil, err
	}
	return s.findOwned(id, u.ID)
}

// SendMessage processes one full turn: persist the user message, run the
// agent over the conversation history, persist the assistant reply and
// return the refreshed conversation. An unknown conversation id writes
// nothing. A failed analysis still produces a persisted assistant turn, so
// the caller always gets a definite response in history.
func (s *Service) SendMessage(ctx context.Context, content, conversationID, modelID string, claims auth.Claims) (*SendMessageResult, error) {
	u, err := s.resolveUser(claims)
	if err != nil {
		return nil, err
	}

	var convo *chat.Conversation
	created := false

	if conversationID != "" {
		convo, err = s.findOwned(conversationID, u.ID)
		if err != nil {
			return nil, err
		}
	} else {
		convo, err = s.conversations.Create(u.ID, deriveTitle(content))
		if err != nil {
			return nil, err
		}
		created = true
	}

	if _, err := s.messages.Create(convo.ID, chat.RoleUser, content); err != nil {
		if created {
			// A fresh conversation without its first message is an orphan;
			// remove it so the failure leaves no partial state behind.
			if cleanupErr := s.conversations.Delete(convo.ID); cleanupErr != nil {
				log.Printf("[chat] failed to clean up orphan conversation %s: %v", convo.ID, cleanupErr)
			}
		}
		return nil, err
	}

	history, err := s.messages.ListByConversation(convo.ID)
	if err != nil {
		return nil, err
	}

	reply := s.agent.Analyze(ctx, content, history, modelID)

	assistant, err := s.messages.Create(convo.ID, chat.RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	if err := s.conversations.Touch(convo.ID); err != nil {
		return nil, err
	}

	refreshed, err := s.conversations.FindByIDAndUser(convo.ID, u.ID)
	if err != nil {
		return nil, err
	}

	return &SendMessageResult{Message: assistant, Conversation: refreshed}, nil
}

// DeleteConversation removes a conversation owned by the caller together
// with its messages.
func (s *Service) DeleteConversation(ctx context.Context, id string, claims auth.Claims) (bool, error) {
	u, err := s.resolveUser(claims)
	if err != nil {
		return false, err
	}

	convo, err := s.findOwned(id, u.ID)
	if err != nil {
		return false, err
	}

	if err := s.conversations.Delete(convo.ID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) resolveUser(claims auth.Claims) (*user.User, error) {
	return s.users.FindOrCreate(claims.Subject, claims.Email, claims.Name)
}

// findOwned parses and looks up a conversation scoped to its owner. Both a
// malformed id and a foreign or missing row surface as
// ErrConversationNotFound.
func (s *Service) findOwned(id string, userID uuid.UUID) (*chat.Conversation, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrConversationNotFound
	}

	convo, err := s.conversations.FindByIDAndUser(parsed, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return convo, nil
}

// deriveTitle names a new conversation after its opening message: verbatim
// up to 50 runes, otherwise the first 47 runes plus "...".
func deriveTitle(content string) string {
	if strings.TrimSpace(content) == "" {
		return chat.DefaultTitle
	}

	runes := []rune(content)
	if len(runes) > 50 {
		return string(runes[:47]) + "..."
	}
	return content
}
