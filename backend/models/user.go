package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

type Profile struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	SelectedLevel Level     `gorm:"type:varchar(16);not null;default:'BEGINNER'" json:"selected_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProfilePatch struct {
	Username      *string
	SelectedLevel *Level
}

func (p ProfilePatch) Empty() bool {
	return p.Username == nil && p.SelectedLevel == nil
}
