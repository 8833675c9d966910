package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelExperienced  Level = "EXPERIENCED"
)

// Levels lists the canonical levels in ascending order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelExperienced}

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelExperienced:
		return true
	}
	return false
}

// Next returns the level after l, or "" for the last one.
func (l Level) Next() Level {
	for i, lv := range Levels {
		if lv == l && i+1 < len(Levels) {
			return Levels[i+1]
		}
	}
	return ""
}

type Category string

const (
	CategoryPractical   Category = "PRACTICAL"
	CategoryTheoretical Category = "THEORETICAL"
	CategoryEquipment   Category = "EQUIPMENT"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPractical, CategoryTheoretical, CategoryEquipment:
		return true
	}
	return false
}

type ContentKind string

const (
	KindTutorial ContentKind = "tutorial"
	KindArticle  ContentKind = "article"
)

func (k ContentKind) Valid() bool {
	return k == KindTutorial || k == KindArticle
}

type Tutorial struct {
	Base `yaml:",inline"`

	Title            string         `gorm:"not null" json:"title" yaml:"title"`
	Level            Level          `gorm:"type:varchar(16);not null;index" json:"level" yaml:"level"`
	DifficultyWeight int            `gorm:"not null;check:difficulty_weight>=1 AND difficulty_weight<=5" json:"difficulty_weight" yaml:"difficulty_weight"`
	Summary          string         `json:"summary" yaml:"summary"`
	Content          string         `gorm:"type:text" json:"content" yaml:"content"`
	Category         Category       `gorm:"type:varchar(16);not null;index" json:"category" yaml:"category"`
	Steps            []TutorialStep `gorm:"constraint:OnDelete:CASCADE" json:"steps,omitempty" yaml:"steps"`
}

type TutorialStep struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TutorialID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	StepOrder  int       `gorm:"not null" json:"order" yaml:"order"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `gorm:"type:text" json:"content" yaml:"content"`
}

func (s *TutorialStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Article struct {
	Base `yaml:",inline"`

	Title            string `gorm:"not null" json:"title" yaml:"title"`
	Level            Level  `gorm:"type:varchar(16);not null;index" json:"level" yaml:"level"`
	DifficultyWeight int    `gorm:"not null;check:difficulty_weight>=1 AND difficulty_weight<=5" json:"difficulty_weight" yaml:"difficulty_weight"`
	Summary          string `json:"summary" yaml:"summary"`
	Content          string `gorm:"type:text" json:"content" yaml:"content"`
}

// ContentSummary is the list representation shared by tutorials and articles.
type ContentSummary struct {
	ID               uuid.UUID   `json:"id"`
	Kind             ContentKind `json:"kind"`
	Title            string      `json:"title"`
	Level            Level       `json:"level"`
	DifficultyWeight int         `json:"difficulty_weight"`
	Summary          string      `json:"summary"`
	Category         Category    `json:"category,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Completed        bool        `json:"completed"`
}

type ContentDetail struct {
	ContentSummary
	Content     string         `json:"content"`
	Steps       []TutorialStep `json:"steps,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

func (t Tutorial) Summarize() ContentSummary {
	return ContentSummary{
		ID:               t.ID,
		Kind:             KindTutorial,
		Title:            t.Title,
		Level:            t.Level,
		DifficultyWeight: t.DifficultyWeight,
		Summary:          t.Summary,
		Category:         t.Category,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (a Article) Summarize() ContentSummary {
	return ContentSummary{
		ID:               a.ID,
		Kind:             KindArticle,
		Title:            a.Title,
		Level:            a.Level,
		DifficultyWeight: a.DifficultyWeight,
		Summary:          a.Summary,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
