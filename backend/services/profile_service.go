package services

import (
	"context"
	"errors"
	"fmt"

	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	users repository.UserRepo
	log   *utils.Logger
}

func NewProfileService(users repository.UserRepo, baseLog *utils.Logger) *ProfileService {
	return &ProfileService{users: users, log: baseLog.With("service", "ProfileService")}
}

// Get returns nil when the user has no profile.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

// SelectedLevel falls back to BEGINNER when the user has no profile.
func (s *ProfileService) SelectedLevel(ctx context.Context, userID uuid.UUID) (models.Level, error) {
	p, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if p == nil || !p.SelectedLevel.Valid() {
		return models.LevelBeginner, nil
	}
	return p.SelectedLevel, nil
}

// Update applies a partial profile change. A username owned by another
// user yields ErrConflict, including when the race is lost at the
// unique index.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, patch models.ProfilePatch) (*models.Profile, error) {
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	if patch.Username != nil {
		taken, err := s.users.UsernameTaken(ctx, *patch.Username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
	}

	profile, err := s.users.UpdateProfile(ctx, userID, patch)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	s.log.Info("profile updated", "user_id", userID)
	return profile, nil
}
