package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
	"todolist/pkg/logger"
	"todolist/pkg/tracing"
)

type TodoHandler struct {
	svc    port.TodoService
	logger *logger.AccessLogger
}

func NewTodoHandler(svc port.TodoService, log *logger.AccessLogger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: log,
	}
}

// ListTodos returns the caller's full todo list, newest first.
func (t *TodoHandler) ListTodos(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.todo.ListTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID := c.GetInt(middleware.UserIDKey)

	todos, err := t.svc.List(ctx, userID)

	if err != nil {
		tracing.AddSpanError(span, err)
		t.logger.Error(ctx, "Failed to list todos",
			zap.Error(err),
			zap.Int("user_id", userID),
		)

		helper.SendInternalError(c, "Error getting todos")
		return
	}

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	c.JSON(http.StatusOK, response.NewTodoListResponse(todos))
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt(middleware.UserIDKey)

	var req request.CreateTodoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid JSON body")
		return
	}

	todo, err := t.svc.Create(ctx, userID, &req)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewTodoResponse(todo))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt(middleware.UserIDKey)

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		// An unparseable id cannot exist, same as a missing one.
		helper.SendNotFoundError(c, "Todo not found")
		return
	}

	var req request.UpdateTodoRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		// Field errors keep their per-field message; anything else is an
		// unparseable body.
		if domain.IsValidation(err) {
			helper.SendDomainError(c, err)
		} else {
			helper.SendBadRequestError(c, "request", "Invalid JSON body")
		}

		return
	}

	todo, err := t.svc.Update(ctx, id, userID, &req)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTodoResponse(todo))
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt(middleware.UserIDKey)

	id, err := uuid.Parse(c.Param("id"))

	if err != nil {
		helper.SendNotFoundError(c, "Todo not found")
		return
	}

	if err := t.svc.Delete(ctx, id, userID); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}
