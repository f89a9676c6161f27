package port

import (
	"context"

	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
)

type AuthService interface {
	Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error)
}

// TokenService issues and verifies principal tokens. The verified result
// is the principal's email, the stable external identity key.
type TokenService interface {
	CreateToken(email string) (string, error)
	VerifyToken(token string) (string, error)
}
