package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seo-optimizer/backend/internal/model/chat"
)

// MessageStore handles message rows. Messages are append-only.
type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Create appends a message to a conversation.
func (s *MessageStore) Create(conversationID uuid.UUID, role chat.Role, content string) (*chat.Message, error) {
	msg := &chat.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// ListByConversation returns every message of a conversation oldest-first.
func (s *MessageStore) ListByConversation(conversationID uuid.UUID) ([]chat.Message, error) {
	var messages []chat.Message
	err := s.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
