package service

import (
	"context"
	"errors"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) ResolveByEmail(ctx context.Context, email string) (domain.User, error) {
	user, err := us.repo.GetByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}

		return domain.User{}, err
	}

	return user, nil
}
