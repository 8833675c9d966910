package repository

import (
	"context"

	"cookmastery/backend/models"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepo interface {
	// LevelCounts returns one row per level that has any content.
	LevelCounts(ctx context.Context, userID uuid.UUID) ([]models.LevelCount, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *utils.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

const levelCountsSQL = `
SELECT items.level AS level,
	COUNT(*) AS total_count,
	COUNT(c.id) AS completed_count
FROM (
	SELECT id, level, 'tutorial' AS kind FROM tutorials
	UNION ALL
	SELECT id, level, 'article' AS kind FROM articles
) AS items
LEFT JOIN completions c
	ON c.content_id = items.id AND c.content_kind = items.kind AND c.user_id = ?
GROUP BY items.level`

type levelCountRow struct {
	Level          string
	TotalCount     int64
	CompletedCount int64
}

func (r *progressRepo) LevelCounts(ctx context.Context, userID uuid.UUID) ([]models.LevelCount, error) {
	var rows []levelCountRow
	if err := r.db.WithContext(ctx).Raw(levelCountsSQL, userID).Scan(&rows).Error; err != nil {
		r.log.Error("level counts failed", "error", err, "user_id", userID)
		return nil, err
	}

	out := make([]models.LevelCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.LevelCount{
			Level:          models.Level(row.Level),
			TotalCount:     row.TotalCount,
			CompletedCount: row.CompletedCount,
			IsUpToDate:     row.TotalCount > 0 && row.CompletedCount >= row.TotalCount,
		})
	}
	return out, nil
}
