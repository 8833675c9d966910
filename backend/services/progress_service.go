package services

import (
	"context"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
)

// AdvanceThreshold is the completion percentage of the selected level at
// which a user may move on.
const AdvanceThreshold = 85.0

type ProgressService struct {
	progress repository.ProgressRepo
	log      *utils.Logger
}

func NewProgressService(progress repository.ProgressRepo, baseLog *utils.Logger) *ProgressService {
	return &ProgressService{progress: progress, log: baseLog.With("service", "ProgressService")}
}

func (s *ProgressService) Summarize(ctx context.Context, userID uuid.UUID, selected models.Level) (*models.ProgressSummary, error) {
	rows, err := s.progress.LevelCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := BuildSummary(userID, selected, rows)
	return &summary, nil
}

// BuildSummary shapes per-level counts into the summary: levels missing
// from rows are zero-filled and the output is always in canonical order.
func BuildSummary(userID uuid.UUID, selected models.Level, rows []models.LevelCount) models.ProgressSummary {
	byLevel := make(map[models.Level]models.LevelCount, len(rows))
	for _, r := range rows {
		byLevel[r.Level] = r
	}

	summary := models.ProgressSummary{
		UserID:        userID,
		SelectedLevel: selected,
		LevelProgress: make([]models.LevelProgress, 0, len(models.Levels)),
	}
	var selectedPercent float64
	for _, level := range models.Levels {
		r := byLevel[level]
		lp := models.LevelProgress{
			Level:          level,
			TotalCount:     r.TotalCount,
			CompletedCount: r.CompletedCount,
			IsUpToDate:     r.IsUpToDate,
		}
		if r.TotalCount > 0 {
			lp.CompletionPercent = float64(r.CompletedCount) / float64(r.TotalCount) * 100
		}
		if level == selected {
			selectedPercent = lp.CompletionPercent
		}
		summary.LevelProgress = append(summary.LevelProgress, lp)
	}

	summary.CanAdvance = selected != models.LevelExperienced && selectedPercent >= AdvanceThreshold
	if next := selected.Next(); next != "" {
		summary.NextLevel = &next
	}
	return summary
}
