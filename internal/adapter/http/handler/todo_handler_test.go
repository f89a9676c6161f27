package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	api "todolist/internal/adapter/http"
	"todolist/internal/adapter/http/handler"
	"todolist/internal/adapter/database/sqlite"
	"todolist/internal/adapter/database/sqlite/repository"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/response"
	"todolist/internal/core/service"
	"todolist/pkg/auth"
	"todolist/pkg/logger"
	"todolist/pkg/test"
	"todolist/pkg/test/factory"
)

type TodoHandlerSuite struct {
	suite.Suite

	db     *sqlite.DB
	router *gin.Engine
	owner  domain.User
	other  domain.User
	token  string
}

func TestTodoHandlerSuite(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	suite.Run(t, new(TodoHandlerSuite))
}

func (s *TodoHandlerSuite) SetupTest() {
	s.db = test.InitTestDB()

	users := repository.NewUserRepository(s.db)
	todos := repository.NewTodoRepository(s.db)

	userService := service.NewUserService(users)
	todoService := service.NewTodoService(todos)

	s.router = api.SetupRouterForTests(api.HandlersConfig{
		TodoHandler:  handler.NewTodoHandler(todoService, logger.NewNop("todolist-test")),
		UserService:  userService,
		TokenService: auth.NewFromEnv(),
	})

	ctx := context.Background()

	var err error

	s.owner, err = users.Create(ctx, factory.NewUser(map[string]any{"Email": "owner@example.com"}))
	s.Require().NoError(err)

	s.other, err = users.Create(ctx, factory.NewUser(map[string]any{"Email": "other@example.com"}))
	s.Require().NoError(err)

	s.token, err = auth.CreateTokenForEmail(s.owner.Email)
	s.Require().NoError(err)
}

func (s *TodoHandlerSuite) TearDownTest() {
	s.db.Close()
}

func (s *TodoHandlerSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer

	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

func (s *TodoHandlerSuite) createTodo(body map[string]any) response.TodoResponse {
	rec := s.request(http.MethodPost, "/todos", s.token, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created response.TodoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	return created
}

func (s *TodoHandlerSuite) TestListWithoutToken() {
	rec := s.request(http.MethodGet, "/todos", "", nil)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TodoHandlerSuite) TestListWithGarbageToken() {
	rec := s.request(http.MethodGet, "/todos", "not-a-jwt", nil)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TodoHandlerSuite) TestListWithUnknownPrincipal() {
	token, err := auth.CreateTokenForEmail("ghost@example.com")
	s.Require().NoError(err)

	rec := s.request(http.MethodGet, "/todos", token, nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "User not found")
}

func (s *TodoHandlerSuite) TestListEmpty() {
	rec := s.request(http.MethodGet, "/todos", s.token, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq("[]", rec.Body.String())
}

func (s *TodoHandlerSuite) TestCreateAndList() {
	created := s.createTodo(map[string]any{"title": "Write report"})

	s.Equal("Write report", created.Title)
	s.Equal("TODO", created.Status)
	s.Nil(created.Description)
	s.Nil(created.Deadline)

	rec := s.request(http.MethodGet, "/todos", s.token, nil)

	s.Equal(http.StatusOK, rec.Code)

	var listed []response.TodoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listed))
	s.Require().Len(listed, 1)
	s.Equal(created.ID, listed[0].ID)
}

func (s *TodoHandlerSuite) TestCreateBlankTitle() {
	rec := s.request(http.MethodPost, "/todos", s.token, map[string]any{"title": "   "})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Title is required")
}

func (s *TodoHandlerSuite) TestCreateInvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/todos", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+s.token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TodoHandlerSuite) TestCreateWithDeadlineAndDescription() {
	created := s.createTodo(map[string]any{
		"title":       "Taxes",
		"description": "the fun kind",
		"deadline":    "2026-09-15",
	})

	s.Require().NotNil(created.Description)
	s.Equal("the fun kind", *created.Description)
	s.Require().NotNil(created.Deadline)
	s.Equal(2026, created.Deadline.Year())
}

func (s *TodoHandlerSuite) TestUpdateStatus() {
	created := s.createTodo(map[string]any{"title": "Write report"})

	rec := s.request(http.MethodPatch, "/todos/"+created.ID.String(), s.token, map[string]any{"status": "DOING"})

	s.Equal(http.StatusOK, rec.Code)

	var updated response.TodoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Equal("DOING", updated.Status)
	s.Equal("Write report", updated.Title)
}

func (s *TodoHandlerSuite) TestUpdateNullDeadlineClears() {
	created := s.createTodo(map[string]any{"title": "Taxes", "deadline": "2026-09-15"})

	rec := s.request(http.MethodPatch, "/todos/"+created.ID.String(), s.token, map[string]any{"deadline": nil})

	s.Equal(http.StatusOK, rec.Code)

	var updated response.TodoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Nil(updated.Deadline)
}

func (s *TodoHandlerSuite) TestUpdateNullTitleRejected() {
	created := s.createTodo(map[string]any{"title": "Write report"})

	rec := s.request(http.MethodPatch, "/todos/"+created.ID.String(), s.token, map[string]any{"title": nil})

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TodoHandlerSuite) TestUpdateMalformedBody() {
	created := s.createTodo(map[string]any{"title": "Write report"})

	req := httptest.NewRequest(http.MethodPatch, "/todos/"+created.ID.String(), bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+s.token)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "Invalid JSON body")
}

func (s *TodoHandlerSuite) TestUpdateEmptyBody() {
	created := s.createTodo(map[string]any{"title": "Write report"})

	rec := s.request(http.MethodPatch, "/todos/"+created.ID.String(), s.token, map[string]any{})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "No valid fields to update")
}

func (s *TodoHandlerSuite) TestUpdateOtherUsersTodo() {
	created := s.createTodo(map[string]any{"title": "mine"})

	otherToken, err := auth.CreateTokenForEmail(s.other.Email)
	s.Require().NoError(err)

	rec := s.request(http.MethodPatch, "/todos/"+created.ID.String(), otherToken, map[string]any{"status": "DONE"})

	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodGet, "/todos", s.token, nil)

	var listed []response.TodoResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &listed))
	s.Require().Len(listed, 1)
	s.Equal("TODO", listed[0].Status)
}

func (s *TodoHandlerSuite) TestUpdateMalformedID() {
	rec := s.request(http.MethodPatch, "/todos/not-a-uuid", s.token, map[string]any{"status": "DONE"})

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TodoHandlerSuite) TestDeleteThenGone() {
	created := s.createTodo(map[string]any{"title": "Throwaway"})

	rec := s.request(http.MethodDelete, "/todos/"+created.ID.String(), s.token, nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Todo deleted successfully")

	rec = s.request(http.MethodDelete, "/todos/"+created.ID.String(), s.token, nil)

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *TodoHandlerSuite) TestDeleteUnknownID() {
	rec := s.request(http.MethodDelete, "/todos/"+uuid.NewString(), s.token, nil)

	s.Equal(http.StatusNotFound, rec.Code)
}
