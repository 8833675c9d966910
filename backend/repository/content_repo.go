package repository

import (
	"context"
	"errors"

	"cookmastery/backend/models"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentSort string

const (
	SortDifficultyAsc ContentSort = "difficulty_asc"
	SortNewest        ContentSort = "newest"
)

// ContentQuery enumerates every optional predicate a listing may carry.
// Nil filters are not applied.
type ContentQuery struct {
	Level    *models.Level
	Category *models.Category
	Sort     ContentSort
	Page     int
	Limit    int
}

type ContentRepo interface {
	ListTutorials(ctx context.Context, q ContentQuery) ([]models.Tutorial, int64, error)
	ListArticles(ctx context.Context, q ContentQuery) ([]models.Article, int64, error)
	GetTutorial(ctx context.Context, id uuid.UUID) (*models.Tutorial, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error)
	Exists(ctx context.Context, kind models.ContentKind, id uuid.UUID) (bool, error)
}

type contentRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *utils.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

// applyContentQuery is the single place a ContentQuery becomes SQL. It
// returns the filtered query (for counting) and the ordered, paged one.
func applyContentQuery(tx *gorm.DB, q ContentQuery, withCategory bool) (filtered, paged *gorm.DB) {
	filtered = tx
	if q.Level != nil {
		filtered = filtered.Where("level = ?", *q.Level)
	}
	if withCategory && q.Category != nil {
		filtered = filtered.Where("category = ?", *q.Category)
	}

	paged = filtered.Session(&gorm.Session{})
	switch q.Sort {
	case SortNewest:
		paged = paged.Order("created_at DESC").Order("id DESC")
	default:
		paged = paged.Order("difficulty_weight ASC").Order("created_at DESC").Order("id ASC")
	}
	paged = paged.Offset(models.Offset(q.Page, q.Limit)).Limit(q.Limit)
	return filtered, paged
}

func (r *contentRepo) ListTutorials(ctx context.Context, q ContentQuery) ([]models.Tutorial, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Tutorial{})
	filtered, paged := applyContentQuery(base, q, true)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.log.Error("count tutorials failed", "error", err, "query", q)
		return nil, 0, err
	}
	var items []models.Tutorial
	if err := paged.Find(&items).Error; err != nil {
		r.log.Error("list tutorials failed", "error", err, "query", q)
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepo) ListArticles(ctx context.Context, q ContentQuery) ([]models.Article, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Article{})
	filtered, paged := applyContentQuery(base, q, false)

	var total int64
	if err := filtered.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.log.Error("count articles failed", "error", err, "query", q)
		return nil, 0, err
	}
	var items []models.Article
	if err := paged.Find(&items).Error; err != nil {
		r.log.Error("list articles failed", "error", err, "query", q)
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepo) GetTutorial(ctx context.Context, id uuid.UUID) (*models.Tutorial, error) {
	var t models.Tutorial
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("get tutorial failed", "error", err, "id", id)
		return nil, err
	}
	return &t, nil
}

func (r *contentRepo) GetArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var a models.Article
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("get article failed", "error", err, "id", id)
		return nil, err
	}
	return &a, nil
}

func (r *contentRepo) Exists(ctx context.Context, kind models.ContentKind, id uuid.UUID) (bool, error) {
	var model interface{}
	switch kind {
	case models.KindTutorial:
		model = &models.Tutorial{}
	case models.KindArticle:
		model = &models.Article{}
	default:
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		r.log.Error("content lookup failed", "error", err, "kind", kind, "id", id)
		return false, err
	}
	return count > 0, nil
}
