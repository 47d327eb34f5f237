package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxRequests is the default number of allowed requests per window.
	defaultMaxRequests = 20
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// RateLimitConfig configures a fixed-window rate limiter.
type RateLimitConfig struct {
	Prefix      string
	MaxRequests int
	Window      time.Duration
}

// RateLimiter limits requests per caller with a Redis fixed window, shared by all API instances.
type RateLimiter struct {
	client redis.UniversalClient
	cfg    RateLimitConfig
}

// NewRateLimiter creates a new rate limiter. Zero config values fall back to defaults.
func NewRateLimiter(client redis.UniversalClient, cfg RateLimitConfig) *RateLimiter {
	if cfg.Prefix == "" {
		cfg.Prefix = "rate-limit:"
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = defaultMaxRequests
	}
	if cfg.Window <= 0 {
		cfg.Window = defaultWindowDuration
	}
	return &RateLimiter{client: client, cfg: cfg}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Callers are keyed by user id when known, by client IP otherwise. Redis failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			key = userID.String()
		}

		allowed, retryAfter, err := rl.allow(c, key)
		if err != nil {
			slog.Warn("Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow counts the request in the current window for key.
func (rl *RateLimiter) allow(c *gin.Context, key string) (bool, time.Duration, error) {
	ctx := c.Request.Context()
	redisKey := rl.cfg.Prefix + c.FullPath() + ":" + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.client.PExpire(ctx, redisKey, rl.cfg.Window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count <= int64(rl.cfg.MaxRequests) {
		return true, 0, nil
	}

	ttl, err := rl.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	return false, ttl, nil
}
