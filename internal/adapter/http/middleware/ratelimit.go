package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"todolist/internal/core/model/response"
	"todolist/pkg/config"
)

// limiterBackend is a fixed-window counter. The in-memory backend covers a
// single process; redis covers replicated deployments.
type limiterBackend interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

type memoryBackend struct {
	cache *cache.Cache
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{cache: cache.New(5*time.Minute, 10*time.Minute)}
}

func (b *memoryBackend) Incr(_ context.Context, key string, window time.Duration) (int, error) {
	// The expiry set at window start is kept on increments; refreshing it
	// would turn the fixed window into a sliding one that never resets
	// under steady traffic.
	if count, expiry, found := b.cache.GetWithExpiration(key); found {
		n := count.(int) + 1
		b.cache.Set(key, n, time.Until(expiry))

		return n, nil
	}

	b.cache.Set(key, 1, window)

	return 1, nil
}

type redisBackend struct {
	client *redis.Client
}

func newRedisBackend(url string) (*redisBackend, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, err
	}

	return &redisBackend{client: redis.NewClient(opts)}, nil
}

func (b *redisBackend) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	pipe := b.client.TxPipeline()

	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return int(incr.Val()), nil
}

type RateLimiter struct {
	backend limiterBackend
	configs map[string]config.RateLimitConfig
}

func NewRateLimiter(cfg *config.AppConfig) (*RateLimiter, error) {
	var backend limiterBackend

	if cfg.RedisURL != "" {
		rb, err := newRedisBackend(cfg.RedisURL)

		if err != nil {
			return nil, err
		}

		backend = rb
	} else {
		backend = newMemoryBackend()
	}

	return &RateLimiter{
		backend: backend,
		configs: cfg.RateLimitConfigs,
	}, nil
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		limit, exists := rl.configs[methodPath]

		if !exists {
			limit, exists = rl.configs["default"]

			if !exists {
				c.Next()
				return
			}
		}

		key := fmt.Sprintf("ratelimit:%s:%s", methodPath, rl.clientKey(c))

		count, err := rl.backend.Incr(c.Request.Context(), key, limit.Window)

		if err != nil {
			// A broken limiter backend must not take requests down with it.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Requests))

		if count > limit.Requests {
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, response.ErrorResponse{
				Error: response.ResponseError{
					Code: "RATE_LIMITED",
					Errors: []response.ValidationError{
						{Field: "request", Message: "Too many requests"},
					},
				},
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limit.Requests-count))
		c.Next()
	}
}

// clientKey prefers the authenticated principal over the client address.
func (rl *RateLimiter) clientKey(c *gin.Context) string {
	if email := c.GetString(PrincipalEmailKey); email != "" {
		return email
	}

	return c.ClientIP()
}
