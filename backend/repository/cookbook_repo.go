package repository

import (
	"context"
	"errors"

	"cookmastery/backend/models"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CookbookSort string

const (
	SortCookbookNewest   CookbookSort = "newest"
	SortCookbookOldest   CookbookSort = "oldest"
	SortCookbookTitleAsc CookbookSort = "title_asc"
)

type CookbookQuery struct {
	Sort  CookbookSort
	Page  int
	Limit int
}

// CookbookRepo scopes every statement by owner id; a row owned by someone
// else behaves exactly like a missing row.
type CookbookRepo interface {
	Create(ctx context.Context, entry *models.CookbookEntry) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.CookbookEntry, error)
	List(ctx context.Context, ownerID uuid.UUID, q CookbookQuery) ([]models.CookbookEntry, int64, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch models.CookbookPatch) (*models.CookbookEntry, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

type cookbookRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewCookbookRepo(db *gorm.DB, baseLog *utils.Logger) CookbookRepo {
	return &cookbookRepo{db: db, log: baseLog.With("repo", "CookbookRepo")}
}

func (r *cookbookRepo) Create(ctx context.Context, entry *models.CookbookEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		r.log.Error("create cookbook entry failed", "error", err, "user_id", entry.UserID)
		return err
	}
	return nil
}

func (r *cookbookRepo) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.CookbookEntry, error) {
	var entry models.CookbookEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("get cookbook entry failed", "error", err, "user_id", ownerID, "entry_id", id)
		return nil, err
	}
	return &entry, nil
}

func (r *cookbookRepo) List(ctx context.Context, ownerID uuid.UUID, q CookbookQuery) ([]models.CookbookEntry, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.CookbookEntry{}).Where("user_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.log.Error("count cookbook entries failed", "error", err, "user_id", ownerID)
		return nil, 0, err
	}

	paged := base.Session(&gorm.Session{})
	// Every mode ends on id so equal keys still page deterministically.
	switch q.Sort {
	case SortCookbookOldest:
		paged = paged.Order("created_at ASC").Order("id ASC")
	case SortCookbookTitleAsc:
		paged = paged.Order("title ASC").Order("id ASC")
	default:
		paged = paged.Order("created_at DESC").Order("id DESC")
	}

	var items []models.CookbookEntry
	if err := paged.Offset(models.Offset(q.Page, q.Limit)).Limit(q.Limit).Find(&items).Error; err != nil {
		r.log.Error("list cookbook entries failed", "error", err, "user_id", ownerID, "sort", q.Sort)
		return nil, 0, err
	}
	return items, total, nil
}

func (r *cookbookRepo) Update(ctx context.Context, ownerID, id uuid.UUID, patch models.CookbookPatch) (*models.CookbookEntry, error) {
	updates := map[string]interface{}{}
	if patch.URL != nil {
		updates["url"] = *patch.URL
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Notes != nil {
		if *patch.Notes == "" {
			updates["notes"] = nil
		} else {
			updates["notes"] = *patch.Notes
		}
	}
	if len(updates) == 0 {
		return r.Get(ctx, ownerID, id)
	}

	res := r.db.WithContext(ctx).
		Model(&models.CookbookEntry{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		r.log.Error("update cookbook entry failed", "error", res.Error, "user_id", ownerID, "entry_id", id)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, ownerID, id)
}

func (r *cookbookRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.CookbookEntry{})
	if res.Error != nil {
		r.log.Error("delete cookbook entry failed", "error", res.Error, "user_id", ownerID, "entry_id", id)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
