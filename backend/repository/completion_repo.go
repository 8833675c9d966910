package repository

import (
	"context"
	"time"

	"cookmastery/backend/models"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepo interface {
	// InsertIfAbsent writes the completion unless the pair already exists
	// and returns the stored row plus whether this call created it.
	InsertIfAbsent(ctx context.Context, userID, contentID uuid.UUID, kind models.ContentKind) (*models.Completion, bool, error)
	// CompletedAt returns completion times for the given ids that userID
	// has completed; ids without a completion are absent from the map.
	CompletedAt(ctx context.Context, userID uuid.UUID, contentIDs []uuid.UUID) (map[uuid.UUID]time.Time, error)
}

type completionRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *utils.Logger) CompletionRepo {
	return &completionRepo{db: db, log: baseLog.With("repo", "CompletionRepo")}
}

func (r *completionRepo) InsertIfAbsent(ctx context.Context, userID, contentID uuid.UUID, kind models.ContentKind) (*models.Completion, bool, error) {
	row := models.Completion{
		UserID:      userID,
		ContentID:   contentID,
		ContentKind: kind,
		// Truncated so the value read back later compares equal.
		CompletedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		r.log.Error("insert completion failed", "error", res.Error, "user_id", userID, "content_id", contentID)
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var existing models.Completion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&existing).Error; err != nil {
		r.log.Error("read existing completion failed", "error", err, "user_id", userID, "content_id", contentID)
		return nil, false, err
	}
	existing.CompletedAt = existing.CompletedAt.UTC()
	return &existing, false, nil
}

func (r *completionRepo) CompletedAt(ctx context.Context, userID uuid.UUID, contentIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	out := make(map[uuid.UUID]time.Time, len(contentIDs))
	if len(contentIDs) == 0 {
		return out, nil
	}
	var rows []models.Completion
	if err := r.db.WithContext(ctx).
		Select("content_id", "completed_at").
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&rows).Error; err != nil {
		r.log.Warn("completion lookup failed", "error", err, "user_id", userID, "items", len(contentIDs))
		return nil, err
	}
	for _, row := range rows {
		out[row.ContentID] = row.CompletedAt.UTC()
	}
	return out, nil
}
