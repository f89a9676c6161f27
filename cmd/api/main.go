package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "todolist/internal/adapter/http"
	"todolist/pkg/config"
	"todolist/pkg/logger"
	"todolist/pkg/metrics"
	"todolist/pkg/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	accessLog, err := logger.New("todolist")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer accessLog.Sync()

	cfg := config.GetDefaultConfig()

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	tel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "todolist",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		MetricsPort:    os.Getenv("METRICS_PORT"),
		OTLPEndpoint:   otlpEndpoint(),
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(context.Background())

	appMetrics := metrics.NewAppMetrics(tel.PrometheusRegistry)

	if err := api.StartServer(ctx, appMetrics, accessLog, cfg); err != nil {
		log.Fatal("Server failed:", err)
	}

	accessLog.Info(context.Background(), "Shutting down gracefully...")
}

func otlpEndpoint() string {
	if endpoint := os.Getenv("OTLP_ENDPOINT"); endpoint != "" {
		return endpoint
	}

	return "localhost:4317"
}
