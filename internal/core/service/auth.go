package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/port"
	"todolist/internal/core/util"
)

type AuthService struct {
	repo port.UserRepository
}

func NewAuthService(repo port.UserRepository) *AuthService {
	return &AuthService{repo}
}

func (as *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error) {
	existing, err := as.repo.GetByEmail(ctx, req.Email)

	if err == nil && existing.Email != "" {
		return nil, domain.ErrEmailTaken
	}

	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := domain.User{
		UUID:              uuid.New(),
		Email:             req.Email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := as.repo.Create(ctx, user)

	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (as *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error) {
	user, err := as.repo.GetByEmail(ctx, req.Email)

	if err != nil {
		slog.Error("Auth#Authenticate", "get_by_email", err)
		return nil, domain.ErrInvalidCredentials
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		slog.Error("Auth#Authenticate", "compare_password", err)
		return nil, domain.ErrInvalidCredentials
	}

	return &user, nil
}
