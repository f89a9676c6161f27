package config

import (
	"os"
	"time"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type AppConfig struct {
	Environment string

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool

	// RedisURL switches the rate limiter to a shared backend when set.
	RedisURL string
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:      "development",
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /signup": {Requests: 5, Window: time.Minute},
			"POST /login":  {Requests: 10, Window: time.Minute},
			"GET /todos":   {Requests: 100, Window: time.Minute},
			"POST /todos":  {Requests: 20, Window: time.Minute},
			"default":      {Requests: 60, Window: time.Minute},
		},
		EnforceHTTPS: false,
		RedisURL:     os.Getenv("REDIS_URL"),
	}
}

func GetServerPort() string {
	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	return port
}
