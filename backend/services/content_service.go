package services

import (
	"context"
	"time"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ListParams is a listing request after validation and defaulting.
type ListParams struct {
	Level            *models.Level
	Category         *models.Category
	Sort             repository.ContentSort
	Page             int
	Limit            int
	IncludeCompleted bool
}

func (p ListParams) query() repository.ContentQuery {
	return repository.ContentQuery{
		Level:    p.Level,
		Category: p.Category,
		Sort:     p.Sort,
		Page:     p.Page,
		Limit:    p.Limit,
	}
}

type ContentService struct {
	content     repository.ContentRepo
	completions repository.CompletionRepo
	log         *utils.Logger
}

func NewContentService(content repository.ContentRepo, completions repository.CompletionRepo, baseLog *utils.Logger) *ContentService {
	return &ContentService{
		content:     content,
		completions: completions,
		log:         baseLog.With("service", "ContentService"),
	}
}

// List returns one page of tutorials or articles. When a viewer is given
// and IncludeCompleted is set, items the viewer finished are marked.
func (s *ContentService) List(ctx context.Context, kind models.ContentKind, p ListParams, viewerID *uuid.UUID) (*models.ContentPage, error) {
	var (
		items []models.ContentSummary
		total int64
	)
	switch kind {
	case models.KindTutorial:
		rows, n, err := s.content.ListTutorials(ctx, p.query())
		if err != nil {
			return nil, err
		}
		items, total = make([]models.ContentSummary, 0, len(rows)), n
		for _, t := range rows {
			items = append(items, t.Summarize())
		}
	case models.KindArticle:
		rows, n, err := s.content.ListArticles(ctx, p.query())
		if err != nil {
			return nil, err
		}
		items, total = make([]models.ContentSummary, 0, len(rows)), n
		for _, a := range rows {
			items = append(items, a.Summarize())
		}
	default:
		return nil, ErrNotFound
	}

	if viewerID != nil && p.IncludeCompleted && len(items) > 0 {
		ids := make([]uuid.UUID, len(items))
		for i := range items {
			ids[i] = items[i].ID
		}
		done := s.completedAt(ctx, *viewerID, ids)
		for i := range items {
			_, items[i].Completed = done[items[i].ID]
		}
	}

	return &models.ContentPage{
		Items:      items,
		Pagination: models.NewPagination(p.Page, p.Limit, total),
	}, nil
}

// ListAll runs both listings concurrently and fails if either fails.
func (s *ContentService) ListAll(ctx context.Context, p ListParams, viewerID *uuid.UUID) (*models.AllContent, error) {
	var tutorials, articles *models.ContentPage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := s.List(gctx, models.KindTutorial, p, viewerID)
		tutorials = page
		return err
	})
	g.Go(func() error {
		ap := p
		ap.Category = nil
		page, err := s.List(gctx, models.KindArticle, ap, viewerID)
		articles = page
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.AllContent{Tutorials: *tutorials, Articles: *articles}, nil
}

// Get returns the detail view of one item, or nil when it does not exist.
func (s *ContentService) Get(ctx context.Context, kind models.ContentKind, id uuid.UUID, viewerID *uuid.UUID) (*models.ContentDetail, error) {
	var detail *models.ContentDetail
	switch kind {
	case models.KindTutorial:
		t, err := s.content.GetTutorial(ctx, id)
		if err != nil || t == nil {
			return nil, err
		}
		detail = &models.ContentDetail{ContentSummary: t.Summarize(), Content: t.Content, Steps: t.Steps}
	case models.KindArticle:
		a, err := s.content.GetArticle(ctx, id)
		if err != nil || a == nil {
			return nil, err
		}
		detail = &models.ContentDetail{ContentSummary: a.Summarize(), Content: a.Content}
	default:
		return nil, nil
	}

	if viewerID != nil {
		if at, ok := s.completedAt(ctx, *viewerID, []uuid.UUID{id})[id]; ok {
			detail.Completed = true
			detail.CompletedAt = &at
		}
	}
	return detail, nil
}

// completedAt never fails: a lookup error is logged and treated as
// "nothing completed".
func (s *ContentService) completedAt(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) map[uuid.UUID]time.Time {
	done, err := s.completions.CompletedAt(ctx, userID, ids)
	if err != nil {
		s.log.Warn("completion enrichment failed", "user_id", userID, "items", len(ids), "error", err)
		return nil
	}
	return done
}
