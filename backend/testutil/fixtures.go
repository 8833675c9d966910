package testutil

import (
	"fmt"
	"testing"
	"time"

	"cookmastery/backend/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Epoch is a fixed base time for fixtures that need ordered created_at.
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type TutorialOpt func(*models.Tutorial)

func WithLevel(l models.Level) TutorialOpt {
	return func(t *models.Tutorial) { t.Level = l }
}

func WithWeight(w int) TutorialOpt {
	return func(t *models.Tutorial) { t.DifficultyWeight = w }
}

func WithCategory(c models.Category) TutorialOpt {
	return func(t *models.Tutorial) { t.Category = c }
}

func WithCreatedAt(at time.Time) TutorialOpt {
	return func(t *models.Tutorial) { t.CreatedAt = at; t.UpdatedAt = at }
}

func CreateTutorial(tb testing.TB, db *gorm.DB, title string, opts ...TutorialOpt) models.Tutorial {
	tb.Helper()
	t := models.Tutorial{
		Title:            title,
		Level:            models.LevelBeginner,
		DifficultyWeight: 1,
		Summary:          title + " summary",
		Content:          title + " content",
		Category:         models.CategoryPractical,
	}
	for _, opt := range opts {
		opt(&t)
	}
	if err := db.Create(&t).Error; err != nil {
		tb.Fatalf("create tutorial: %v", err)
	}
	return t
}

func CreateArticle(tb testing.TB, db *gorm.DB, title string, level models.Level, weight int, createdAt time.Time) models.Article {
	tb.Helper()
	a := models.Article{
		Title:            title,
		Level:            level,
		DifficultyWeight: weight,
		Summary:          title + " summary",
		Content:          title + " content",
	}
	a.CreatedAt = createdAt
	a.UpdatedAt = createdAt
	if err := db.Create(&a).Error; err != nil {
		tb.Fatalf("create article: %v", err)
	}
	return a
}

// CreateUser inserts a user and profile with password "password123".
func CreateUser(tb testing.TB, db *gorm.DB, username string) (models.User, models.Profile) {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash: %v", err)
	}
	u := models.User{Email: fmt.Sprintf("%s@example.com", username), PasswordHash: string(hash)}
	if err := db.Create(&u).Error; err != nil {
		tb.Fatalf("create user: %v", err)
	}
	p := models.Profile{UserID: u.ID, Username: username, SelectedLevel: models.LevelBeginner}
	if err := db.Create(&p).Error; err != nil {
		tb.Fatalf("create profile: %v", err)
	}
	return u, p
}

func CreateCookbookEntry(tb testing.TB, db *gorm.DB, owner uuid.UUID, title string, createdAt time.Time) models.CookbookEntry {
	tb.Helper()
	e := models.CookbookEntry{UserID: owner, URL: "https://recipes.example.com/" + uuid.NewString(), Title: title}
	e.CreatedAt = createdAt
	e.UpdatedAt = createdAt
	if err := db.Create(&e).Error; err != nil {
		tb.Fatalf("create cookbook entry: %v", err)
	}
	return e
}

func Complete(tb testing.TB, db *gorm.DB, userID, contentID uuid.UUID, kind models.ContentKind) {
	tb.Helper()
	c := models.Completion{UserID: userID, ContentID: contentID, ContentKind: kind, CompletedAt: time.Now().UTC()}
	if err := db.Create(&c).Error; err != nil {
		tb.Fatalf("create completion: %v", err)
	}
}
