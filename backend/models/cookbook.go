package models

import "github.com/google/uuid"

type CookbookEntry struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	URL    string    `gorm:"type:varchar(2048);not null" json:"url"`
	Title  string    `gorm:"type:varchar(200);not null;index" json:"title"`
	Notes  *string   `gorm:"type:text" json:"notes"`
}

// CookbookPatch carries only the fields present in an update request.
type CookbookPatch struct {
	URL   *string
	Title *string
	Notes *string
}

func (p CookbookPatch) Empty() bool {
	return p.URL == nil && p.Title == nil && p.Notes == nil
}
