package repository

import (
	"context"
	"errors"
	"strings"

	"cookmastery/backend/models"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo interface {
	// CreateWithProfile inserts the user and its profile atomically.
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UsernameTaken(ctx context.Context, username string, exceptUserID uuid.UUID) (bool, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.ProfilePatch) (*models.Profile, error)
}

type userRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *utils.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	r.logWriteErr("create user failed", err, "username", profile.Username)
	return err
}

// logWriteErr logs a failed write. Unique violations are expected
// conflicts and only reach warn level.
func (r *userRepo) logWriteErr(msg string, err error, kv ...interface{}) {
	if err == nil {
		return
	}
	kv = append(kv, "error", err)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		r.log.Warn(msg, kv...)
		return
	}
	r.log.Error(msg, kv...)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("get user by email failed", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("get profile failed", "error", err, "user_id", userID)
		return nil, err
	}
	return &profile, nil
}

func (r *userRepo) UsernameTaken(ctx context.Context, username string, exceptUserID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("username = ? AND user_id <> ?", username, exceptUserID).
		Count(&count).Error; err != nil {
		r.log.Error("username lookup failed", "error", err, "user_id", exceptUserID)
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.ProfilePatch) (*models.Profile, error) {
	updates := map[string]interface{}{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.SelectedLevel != nil {
		updates["selected_level"] = *patch.SelectedLevel
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.Profile{}).
			Where("user_id = ?", userID).
			Updates(updates)
		if res.Error != nil {
			r.logWriteErr("update profile failed", res.Error, "user_id", userID)
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetProfile(ctx, userID)
}
