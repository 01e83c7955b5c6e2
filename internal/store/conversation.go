package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seo-optimizer/backend/internal/model/chat"
)

// ConversationStore handles conversation rows. Lookups are always scoped by
// owner so one user can never reach another user's conversations.
type ConversationStore struct {
	db *gorm.DB
}

func NewConversationStore(db *gorm.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Create persists a new conversation owned by userID.
func (s *ConversationStore) Create(userID uuid.UUID, title string) (*chat.Conversation, error) {
	convo := &chat.Conversation{
		ID:       uuid.New(),
		Title:    title,
		UserID:   userID,
		Messages: []chat.Message{},
	}
	if err := s.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// FindByIDAndUser retrieves one conversation scoped to its owner, with
// messages ordered oldest-first. Returns gorm.ErrRecordNotFound when the id
// is unknown or owned by someone else.
func (s *ConversationStore) FindByIDAndUser(id, userID uuid.UUID) (*chat.Conversation, error) {
	var convo chat.Conversation
	err := s.db.
		Preload("Messages", messagesOldestFirst).
		Where("id = ? AND user_id = ?", id, userID).
		First(&convo).Error
	if err != nil {
		return nil, err
	}
	return &convo, nil
}

// FindByUser lists a user's conversations, most recently updated first,
// with messages attached.
func (s *ConversationStore) FindByUser(userID uuid.UUID) ([]chat.Conversation, error) {
	var convos []chat.Conversation
	err := s.db.
		Preload("Messages", messagesOldestFirst).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&convos).Error
	if err != nil {
		return nil, err
	}
	return convos, nil
}

// Touch bumps the conversation's updated_at to mark message activity.
func (s *ConversationStore) Touch(id uuid.UUID) error {
	return s.db.Model(&chat.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// Delete removes a conversation and all of its messages.
func (s *ConversationStore) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&chat.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&chat.Conversation{}, "id = ?", id).Error
	})
}

func messagesOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("messages.created_at ASC")
}
