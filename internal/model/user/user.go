package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/seo-optimizer/backend/internal/model/chat"
)

// User is an account resolved from identity-provider claims. Rows are
// created lazily on first contact and keyed by the auth subject id.
type User struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Auth0ID       string              `gorm:"uniqueIndex;not null" json:"auth0Id"`
	Email         string              `json:"email,omitempty"`
	Name          string              `json:"name,omitempty"`
	Conversations []chat.Conversation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time           `json:"createdAt"`
}
