package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Completion records that a user finished a tutorial or article. At most
// one row exists per (user, content) pair.
type Completion struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_content" json:"user_id"`
	ContentID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_content" json:"content_id"`
	ContentKind ContentKind `gorm:"type:varchar(16);not null" json:"content_kind"`
	CompletedAt time.Time   `gorm:"not null" json:"completed_at"`
}

func (c *Completion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CompletionStatus string

const (
	StatusCreated          CompletionStatus = "created"
	StatusAlreadyCompleted CompletionStatus = "already_completed"
)

type CompletionResult struct {
	ContentID   uuid.UUID        `json:"content_id"`
	UserID      uuid.UUID        `json:"user_id"`
	CompletedAt time.Time        `json:"completed_at"`
	Status      CompletionStatus `json:"status"`
}

// LevelCount is one aggregate row per level produced by the data store.
type LevelCount struct {
	Level          Level
	TotalCount     int64
	CompletedCount int64
	IsUpToDate     bool
}

type LevelProgress struct {
	Level             Level   `json:"level"`
	TotalCount        int64   `json:"total_count"`
	CompletedCount    int64   `json:"completed_count"`
	CompletionPercent float64 `json:"completion_percent"`
	IsUpToDate        bool    `json:"is_up_to_date"`
}

type ProgressSummary struct {
	UserID        uuid.UUID       `json:"user_id"`
	SelectedLevel Level           `json:"selected_level"`
	LevelProgress []LevelProgress `json:"level_progress"`
	CanAdvance    bool            `json:"can_advance"`
	NextLevel     *Level          `json:"next_level"`
}
