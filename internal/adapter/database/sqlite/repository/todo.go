package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/adapter/database/sqlite"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/pkg/tracing"
)

var todoColumns = []string{"id", "title", "description", "status", "deadline", "user_id", "created_at", "updated_at"}

type TodoRepository struct {
	db *sqlite.DB
}

func NewTodoRepository(db *sqlite.DB) port.TodoRepository {
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

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

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

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Todo{}, err
	}

	defer rows.Close()

	if !rows.Next() {
		return domain.Todo{}, domain.ErrNotFound
	}

	return scanTodo(rows)
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Insert("todos").
		Columns(todoColumns...).
		Values(
			todo.ID.String(),
			todo.Title,
			nullableString(todo.Description),
			todo.Status.String(),
			nullableTime(todo.Deadline),
			todo.UserID,
			todo.CreatedAt,
			todo.UpdatedAt,
		)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	if _, err := tr.db.ExecContext(ctx, stmt, args...); err != nil {
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

	// Both id and owner are part of the match condition, so the check and
	// the mutation happen in one statement.
	query := tr.db.QueryBuilder.Update("todos").
		SetMap(sets).
		Where(sq.Eq{"id": id.String(), "user_id": userID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	res, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating todo", "error", err)
		return domain.Todo{}, err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return domain.Todo{}, err
	}

	if affected == 0 {
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

	res, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var (
		todo        domain.Todo
		rawID       string
		rawStatus   string
		description sql.NullString
		deadline    sql.NullTime
	)

	err := row.Scan(&rawID, &todo.Title, &description, &rawStatus, &deadline, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Todo{}, domain.ErrNotFound
		}

		return domain.Todo{}, err
	}

	todo.ID, err = uuid.Parse(rawID)

	if err != nil {
		return domain.Todo{}, err
	}

	todo.Status = domain.Status(rawStatus)

	if description.Valid {
		todo.Description = &description.String
	}

	if deadline.Valid {
		t := deadline.Time
		todo.Deadline = &t
	}

	return todo, nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}

	return *s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}

	return *t
}
