package chat

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is used when a conversation is opened with empty content.
const DefaultTitle = "New Chat"

// Conversation groups an ordered run of messages owned by a single user.
// Deleting the owner cascades here, and deleting a conversation cascades
// to its messages.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null;default:'New Chat'" json:"title"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Messages  []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
