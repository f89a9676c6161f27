package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/adapter/database/postgres"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/pkg/tracing"
)

var todoColumns = []string{"id", "title", "description", "status", "deadline", "user_id", "created_at", "updated_at"}

type TodoRepository struct {
	db *postgres.DB
}

func NewTodoRepository(db *postgres.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func (tr *TodoRepository) GetAllByUser(ctx context.Context, userID int) ([]domain.Todo, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.todos.GetAllByUser", []attribute.KeyValue{
		attribute.String("db.table", "todos"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", userID),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error fetching todos", "error", err)

		return nil, err
	}

	defer rows.Close()

	todos := []domain.Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(todos)))

	return todos, nil
}

func (tr *TodoRepository) GetByID(ctx context.Context, id uuid.UUID, userID int) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": id.String(), "user_id": userID}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	return scanTodo(tr.db.QueryRow(ctx, stmt, args...))
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Insert("todos").
		Columns(todoColumns...).
		Values(
			todo.ID.String(),
			todo.Title,
			todo.Description,
			todo.Status.String(),
			todo.Deadline,
			todo.UserID,
			todo.CreatedAt,
			todo.UpdatedAt,
		)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err := tr.db.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error creating todo", "error", err)
		return domain.Todo{}, err
	}

	return tr.GetByID(ctx, todo.ID, todo.UserID)
}

func (tr *TodoRepository) Update(ctx context.Context, id uuid.UUID, userID int, patch domain.TodoPatch) (domain.Todo, error) {
	sets := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if patch.Title != nil {
		sets["title"] = *patch.Title
	}

	if patch.Description != nil {
		sets["description"] = *patch.Description
	}

	if patch.Status != nil {
		sets["status"] = patch.Status.String()
	}

	if patch.Deadline != nil {
		sets["deadline"] = *patch.Deadline
	}

	if patch.ClearDeadline {
		sets["deadline"] = nil
	}

	// id and owner form a single match predicate.
	query := tr.db.QueryBuilder.Update("todos").
		SetMap(sets).
		Where(sq.Eq{"id": id.String(), "user_id": userID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	if tag.RowsAffected() == 0 {
		return domain.Todo{}, domain.ErrNotFound
	}

	return tr.GetByID(ctx, id, userID)
}

func (tr *TodoRepository) Delete(ctx context.Context, id uuid.UUID, userID int) error {
	query := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"id": id.String(), "user_id": userID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var (
		todo      domain.Todo
		rawID     string
		rawStatus string
	)

	err := row.Scan(&rawID, &todo.Title, &todo.Description, &rawStatus, &todo.Deadline, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, domain.ErrNotFound
		}

		return domain.Todo{}, err
	}

	todo.ID, err = uuid.Parse(rawID)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Status = domain.Status(rawStatus)

	return todo, nil
}
