package database

import (
	"fmt"
	"os"

	"cookmastery/backend/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedFile is the YAML layout accepted by the seed command.
type SeedFile struct {
	Tutorials []models.Tutorial `yaml:"tutorials"`
	Articles  []models.Article  `yaml:"articles"`
}

type SeedResult struct {
	Tutorials int
	Articles  int
}

func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i := range f.Tutorials {
		t := &f.Tutorials[i]
		if t.ID == uuid.Nil {
			t.ID = seedID(models.KindTutorial, t.Title)
		}
		if err := validateSeedItem(t.Title, t.Level, t.DifficultyWeight); err != nil {
			return nil, fmt.Errorf("tutorial %d: %w", i, err)
		}
		if !t.Category.Valid() {
			return nil, fmt.Errorf("tutorial %d: invalid category %q", i, t.Category)
		}
	}
	for i := range f.Articles {
		a := &f.Articles[i]
		if a.ID == uuid.Nil {
			a.ID = seedID(models.KindArticle, a.Title)
		}
		if err := validateSeedItem(a.Title, a.Level, a.DifficultyWeight); err != nil {
			return nil, fmt.Errorf("article %d: %w", i, err)
		}
	}
	return &f, nil
}

// seedID derives a stable id so re-running a seed file without explicit
// ids updates rows instead of duplicating them.
func seedID(kind models.ContentKind, title string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("cookmastery:"+string(kind)+":"+title))
}

func validateSeedItem(title string, level models.Level, weight int) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if !level.Valid() {
		return fmt.Errorf("invalid level %q", level)
	}
	if weight < 1 || weight > 5 {
		return fmt.Errorf("difficulty_weight %d out of range 1-5", weight)
	}
	return nil
}

// Seed upserts the file's content by id. Tutorial steps are replaced
// wholesale so that reordering in the file is reflected.
func Seed(db *gorm.DB, f *SeedFile) (SeedResult, error) {
	var res SeedResult
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := range f.Tutorials {
			t := f.Tutorials[i]
			steps := t.Steps
			t.Steps = nil
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&t).Error; err != nil {
				return fmt.Errorf("upsert tutorial %q: %w", t.Title, err)
			}
			if err := tx.Where("tutorial_id = ?", t.ID).Delete(&models.TutorialStep{}).Error; err != nil {
				return err
			}
			for j := range steps {
				steps[j].TutorialID = t.ID
				if steps[j].StepOrder == 0 {
					steps[j].StepOrder = j + 1
				}
			}
			if len(steps) > 0 {
				if err := tx.Create(&steps).Error; err != nil {
					return fmt.Errorf("insert steps for %q: %w", t.Title, err)
				}
			}
			res.Tutorials++
		}
		for i := range f.Articles {
			a := f.Articles[i]
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&a).Error; err != nil {
				return fmt.Errorf("upsert article %q: %w", a.Title, err)
			}
			res.Articles++
		}
		return nil
	})
	return res, err
}
