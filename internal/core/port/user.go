package port

import (
	"context"

	"todolist/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type UserService interface {
	// ResolveByEmail maps a principal email to the internal user record.
	// Absence is domain.ErrUserNotFound.
	ResolveByEmail(ctx context.Context, email string) (domain.User, error)
}
