package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"todolist/internal/adapter/http/handler"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/core/port"
	"todolist/pkg/config"
	"todolist/pkg/logger"
	"todolist/pkg/metrics"
)

type HandlersConfig struct {
	AuthHandler  *handler.AuthHandler
	TodoHandler  *handler.TodoHandler
	UserService  port.UserService
	TokenService port.TokenService
}

func SetupRouter(handlers HandlersConfig, m *metrics.AppMetrics, log *logger.AccessLogger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(otelgin.Middleware("todolist"))
	router.Use(middleware.LoggingMiddleware(log))

	if m != nil {
		router.Use(middleware.MetricsMiddleware(m))
	}

	router.Use(gin.Recovery())
	router.Use(middleware.HTTPSRedirectMiddleware(cfg.EnforceHTTPS))
	router.Use(corsMiddleware())

	if cfg.RateLimitEnabled {
		limiter, err := middleware.NewRateLimiter(cfg)

		if err != nil {
			slog.Error("Rate limiter disabled", "error", err)
		} else {
			router.Use(limiter.Middleware())
		}
	}

	if handlers.AuthHandler != nil {
		public := router.Group("/")
		{
			public.POST("/signup", handlers.AuthHandler.Signup)
			public.POST("/login", handlers.AuthHandler.Login)
		}
	}

	if handlers.TodoHandler != nil {
		protected := router.Group("/")
		protected.Use(middleware.JwtMiddleware(handlers.TokenService))
		protected.Use(middleware.CurrentUserMiddleware(handlers.UserService))
		{
			protected.GET("/todos", handlers.TodoHandler.ListTodos)
			protected.POST("/todos", handlers.TodoHandler.CreateTodo)
			protected.PATCH("/todos/:id", handlers.TodoHandler.UpdateTodo)
			protected.DELETE("/todos/:id", handlers.TodoHandler.DeleteTodo)
		}
	}

	return router
}

// SetupRouterForTests skips telemetry, metrics and rate limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		router.POST("/signup", handlers.AuthHandler.Signup)
		router.POST("/login", handlers.AuthHandler.Login)
	}

	if handlers.TodoHandler != nil {
		protected := router.Group("/")
		protected.Use(middleware.JwtMiddleware(handlers.TokenService))
		protected.Use(middleware.CurrentUserMiddleware(handlers.UserService))
		{
			protected.GET("/todos", handlers.TodoHandler.ListTodos)
			protected.POST("/todos", handlers.TodoHandler.CreateTodo)
			protected.PATCH("/todos/:id", handlers.TodoHandler.UpdateTodo)
			protected.DELETE("/todos/:id", handlers.TodoHandler.DeleteTodo)
		}
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
