package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"todolist/pkg/config"
	"todolist/pkg/logger"
	"todolist/pkg/metrics"
)

func StartServer(ctx context.Context, m *metrics.AppMetrics, log *logger.AccessLogger, cfg *config.AppConfig) error {
	container, err := NewContainer(ctx, log, m)

	if err != nil {
		return err
	}

	defer container.Close()

	router := SetupRouter(HandlersConfig{
		AuthHandler:  container.AuthHandler,
		TodoHandler:  container.TodoHandler,
		UserService:  container.UserService,
		TokenService: container.TokenService,
	}, m, log, cfg)

	port := config.GetServerPort()

	slog.Info("Server starting",
		"port", port,
		"environment", cfg.Environment,
		"rate_limit_enabled", cfg.RateLimitEnabled)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
