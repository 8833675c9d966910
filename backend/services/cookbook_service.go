package services

import (
	"context"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
)

type CookbookInput struct {
	URL   string
	Title string
	Notes *string
}

type CookbookService struct {
	entries repository.CookbookRepo
	log     *utils.Logger
}

func NewCookbookService(entries repository.CookbookRepo, baseLog *utils.Logger) *CookbookService {
	return &CookbookService{entries: entries, log: baseLog.With("service", "CookbookService")}
}

func (s *CookbookService) Create(ctx context.Context, ownerID uuid.UUID, in CookbookInput) (*models.CookbookEntry, error) {
	entry := &models.CookbookEntry{UserID: ownerID, URL: in.URL, Title: in.Title}
	if in.Notes != nil && *in.Notes != "" {
		entry.Notes = in.Notes
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Debug("cookbook entry created", "user_id", ownerID, "entry_id", entry.ID)
	return entry, nil
}

// Get returns nil when the entry is missing or belongs to someone else.
func (s *CookbookService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.CookbookEntry, error) {
	return s.entries.Get(ctx, ownerID, id)
}

func (s *CookbookService) List(ctx context.Context, ownerID uuid.UUID, q repository.CookbookQuery) (*models.CookbookPage, error) {
	items, total, err := s.entries.List(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CookbookEntry{}
	}
	return &models.CookbookPage{Items: items, Pagination: models.NewPagination(q.Page, q.Limit, total)}, nil
}

// Update applies the fields present in patch. It returns ErrEmptyUpdate
// for an empty patch and nil when no owned row matches.
func (s *CookbookService) Update(ctx context.Context, ownerID, id uuid.UUID, patch models.CookbookPatch) (*models.CookbookEntry, error) {
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}
	return s.entries.Update(ctx, ownerID, id, patch)
}

func (s *CookbookService) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	deleted, err := s.entries.Delete(ctx, ownerID, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Debug("cookbook entry deleted", "user_id", ownerID, "entry_id", id)
	}
	return deleted, nil
}
