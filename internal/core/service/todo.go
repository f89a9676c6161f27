package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/port"
	"todolist/internal/core/util"
	"todolist/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type TodoService struct {
	repo port.TodoRepository
}

func NewTodoService(repo port.TodoRepository) *TodoService {
	return &TodoService{repo}
}

func (ts *TodoService) List(ctx context.Context, userID int) ([]domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.List", []attribute.KeyValue{
		attribute.Int("user.id", userID),
	})

	defer span.End()

	todos, err := ts.repo.GetAllByUser(ctx, userID)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Todo#List failed", "error", err, "user_id", userID)

		return nil, err
	}

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	return todos, nil
}

func (ts *TodoService) Create(ctx context.Context, userID int, req *request.CreateTodoRequest) (domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Create", []attribute.KeyValue{
		attribute.Int("user.id", userID),
	})

	defer span.End()

	title := strings.TrimSpace(req.Title)

	if title == "" {
		return domain.Todo{}, domain.NewFieldError("title", "Title is required")
	}

	var deadline *time.Time

	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := util.ParseDeadline(*req.Deadline)

		if err != nil {
			return domain.Todo{}, domain.NewFieldError("deadline", "Invalid deadline")
		}

		deadline = &parsed
	}

	now := time.Now().UTC()

	todo := domain.Todo{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		Status:      domain.StatusTodo,
		Deadline:    deadline,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := ts.repo.Create(ctx, todo)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Todo#Create failed", "error", err, "title", title)

		return domain.Todo{}, err
	}

	return created, nil
}

func (ts *TodoService) Update(ctx context.Context, id uuid.UUID, userID int, req *request.UpdateTodoRequest) (domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Update", []attribute.KeyValue{
		attribute.Int("user.id", userID),
		attribute.String("todo.id", id.String()),
	})

	defer span.End()

	patch, err := buildPatch(req)

	if err != nil {
		return domain.Todo{}, err
	}

	if patch.IsEmpty() {
		return domain.Todo{}, domain.ErrEmptyUpdate
	}

	updated, err := ts.repo.Update(ctx, id, userID, patch)

	if err != nil {
		tracing.AddSpanError(span, err)

		return domain.Todo{}, err
	}

	return updated, nil
}

func (ts *TodoService) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Delete", []attribute.KeyValue{
		attribute.Int("user.id", userID),
		attribute.String("todo.id", id.String()),
	})

	defer span.End()

	if err := ts.repo.Delete(ctx, id, userID); err != nil {
		tracing.AddSpanError(span, err)

		return err
	}

	return nil
}

// buildPatch validates the present fields and converts them to a
// domain patch. Absent fields stay untouched.
func buildPatch(req *request.UpdateTodoRequest) (domain.TodoPatch, error) {
	var patch domain.TodoPatch

	if req.HasTitle {
		title := strings.TrimSpace(*req.Title)

		if title == "" {
			return patch, domain.NewFieldError("title", "Title must be a non-empty string")
		}

		patch.Title = &title
	}

	if req.HasDescription {
		patch.Description = req.Description
	}

	if req.HasStatus {
		status, err := domain.ParseStatus(*req.Status)

		if err != nil {
			return patch, domain.NewFieldError("status", "Invalid todo status")
		}

		patch.Status = &status
	}

	if req.HasDeadline {
		if req.DeadlineNull {
			patch.ClearDeadline = true
		} else {
			parsed, err := util.ParseDeadline(*req.Deadline)

			if err != nil {
				return patch, domain.NewFieldError("deadline", "Invalid deadline")
			}

			patch.Deadline = &parsed
		}
	}

	return patch, nil
}
