package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/seo-optimizer/backend/internal/model/user"
)

// UserStore handles user rows.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindOrCreate resolves a user by auth subject id, creating the row on first
// contact. Access tokens often omit email/name, so stored values are
// backfilled whenever non-empty incoming claims differ (last-write-wins).
func (s *UserStore) FindOrCreate(auth0ID, email, name string) (*user.User, error) {
	var u user.User
	err := s.db.Where("auth0_id = ?", auth0ID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = user.User{
			ID:      uuid.New(),
			Auth0ID: auth0ID,
			Email:   email,
			Name:    name,
		}
		if err := s.db.Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if email != "" && email != u.Email {
		u.Email = email
		changed = true
	}
	if name != "" && name != u.Name {
		u.Name = name
		changed = true
	}
	if changed {
		if err := s.db.Save(&u).Error; err != nil {
			return nil, err
		}
	}

	return &u, nil
}
