package chat

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes who produced a message. The set is closed: every turn
// is exactly one user message followed by one assistant message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message persists a single turn half. Messages are append-only; creation
// order within a conversation drives both model context and display.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversationId"`
	Role           Role      `gorm:"not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
