package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cookmastery/backend/config"
	"cookmastery/backend/models"
	"cookmastery/backend/repository"
	"cookmastery/backend/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthResult struct {
	Token   string          `json:"token"`
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile,omitempty"`
}

type AuthService struct {
	users      repository.UserRepo
	cfg        *config.Config
	log        *utils.Logger
	bcryptCost int
}

func NewAuthService(users repository.UserRepo, cfg *config.Config, baseLog *utils.Logger) *AuthService {
	return &AuthService{
		users:      users,
		cfg:        cfg,
		log:        baseLog.With("service", "AuthService"),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, email, password, username string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	taken, err := s.users.UsernameTaken(ctx, username, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: string(hash)}
	profile := &models.Profile{Username: username, SelectedLevel: models.LevelBeginner}
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email or username already taken", ErrConflict)
		}
		return nil, err
	}

	token, err := utils.GenerateJWTToken(user.ID, s.cfg)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "user_id", user.ID)
	return &AuthResult{Token: token, User: user, Profile: profile}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWTToken(user.ID, s.cfg)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
