package http

import (
	"context"
	"os"

	"todolist/internal/adapter/database/postgres"
	pgrepo "todolist/internal/adapter/database/postgres/repository"
	"todolist/internal/adapter/database/sqlite"
	sqliterepo "todolist/internal/adapter/database/sqlite/repository"
	"todolist/internal/adapter/http/handler"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/pkg/auth"
	"todolist/pkg/logger"
	"todolist/pkg/metrics"
)

type Container struct {
	UserRepo port.UserRepository
	TodoRepo port.TodoRepository

	UserService  port.UserService
	TodoService  port.TodoService
	AuthService  port.AuthService
	TokenService port.TokenService

	TodoHandler *handler.TodoHandler
	AuthHandler *handler.AuthHandler

	cleanup func()
}

// NewContainer wires repositories, services and handlers. Postgres is used
// when DATABASE_URL is set, the embedded sqlite database otherwise.
func NewContainer(ctx context.Context, log *logger.AccessLogger, m *metrics.AppMetrics) (*Container, error) {
	var (
		userRepo port.UserRepository
		todoRepo port.TodoRepository
		cleanup  func()
	)

	if os.Getenv("DATABASE_URL") != "" {
		db, err := postgres.NewDB(ctx)

		if err != nil {
			return nil, err
		}

		userRepo = pgrepo.NewUserRepository(db)
		todoRepo = pgrepo.NewTodoRepository(db)
		cleanup = db.Close
	} else {
		db, err := sqlite.NewDB()

		if err != nil {
			return nil, err
		}

		if m != nil {
			db = db.WithMetrics(m)
		}

		userRepo = sqliterepo.NewUserRepository(db)
		todoRepo = sqliterepo.NewTodoRepository(db)
		cleanup = func() { db.Close() }
	}

	userSvc := service.NewUserService(userRepo)
	todoSvc := service.NewTodoService(todoRepo)
	authSvc := service.NewAuthService(userRepo)
	tokenSvc := auth.NewFromEnv()

	return &Container{
		UserRepo: userRepo,
		TodoRepo: todoRepo,

		UserService:  userSvc,
		TodoService:  todoSvc,
		AuthService:  authSvc,
		TokenService: tokenSvc,

		TodoHandler: handler.NewTodoHandler(todoSvc, log),
		AuthHandler: handler.NewAuthHandler(authSvc, tokenSvc),

		cleanup: cleanup,
	}, nil
}

func (c *Container) Close() {
	if c.cleanup != nil {
		c.cleanup()
	}
}
