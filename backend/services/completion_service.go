package services

import (
	"context"

	"cookmastery/backend/metrics"
	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
)

type CompletionService struct {
	content     repository.ContentRepo
	completions repository.CompletionRepo
	log         *utils.Logger
}

func NewCompletionService(content repository.ContentRepo, completions repository.CompletionRepo, baseLog *utils.Logger) *CompletionService {
	return &CompletionService{
		content:     content,
		completions: completions,
		log:         baseLog.With("service", "CompletionService"),
	}
}

// Complete marks the item as done for the user. Repeated calls keep the
// first timestamp and report StatusAlreadyCompleted.
func (s *CompletionService) Complete(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) (*models.CompletionResult, error) {
	exists, err := s.content.Exists(ctx, kind, contentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	row, created, err := s.completions.InsertIfAbsent(ctx, userID, contentID, kind)
	if err != nil {
		return nil, err
	}

	status := models.StatusAlreadyCompleted
	if created {
		status = models.StatusCreated
		s.log.Info("content completed", "user_id", userID, "content_id", contentID, "kind", kind)
	}
	metrics.Completions.WithLabelValues(string(kind), string(status)).Inc()

	return &models.CompletionResult{
		ContentID:   row.ContentID,
		UserID:      row.UserID,
		CompletedAt: row.CompletedAt,
		Status:      status,
	}, nil
}
