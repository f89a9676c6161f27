package port

import (
	"context"

	"github.com/google/uuid"

	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
)

type TodoRepository interface {
	// GetAllByUser returns the full set of a user's todos ordered by
	// created_at descending.
	GetAllByUser(ctx context.Context, userID int) ([]domain.Todo, error)

	// GetByID matches id and owner in one predicate; a missing row and a
	// row owned by someone else are both domain.ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID, userID int) (domain.Todo, error)

	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)

	// Update applies the patch with a single conditional statement keyed
	// on (id, user_id). Zero affected rows is domain.ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, userID int, patch domain.TodoPatch) (domain.Todo, error)

	// Delete removes the row matching (id, user_id) in one statement.
	Delete(ctx context.Context, id uuid.UUID, userID int) error
}

type TodoService interface {
	List(ctx context.Context, userID int) ([]domain.Todo, error)
	Create(ctx context.Context, userID int, req *request.CreateTodoRequest) (domain.Todo, error)
	Update(ctx context.Context, id uuid.UUID, userID int, req *request.UpdateTodoRequest) (domain.Todo, error)
	Delete(ctx context.Context, id uuid.UUID, userID int) error
}
