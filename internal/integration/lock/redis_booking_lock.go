// Package lock provides distributed locks backed by Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Config holds the timing of the booking lock.
type Config struct {
	KeyPrefix     string
	TTL           time.Duration
	WaitTimeout   time.Duration
	RetryInterval time.Duration
}

// DefaultConfig returns the default lock configuration.
func DefaultConfig() Config {
	return Config{
		KeyPrefix:     "booking-lock:property:",
		TTL:           10 * time.Second,
		WaitTimeout:   3 * time.Second,
		RetryInterval: 50 * time.Millisecond,
	}
}

// redisBookingLock implements adapter.BookingLock with SET NX PX and a token-checked release.
type redisBookingLock struct {
	client redis.UniversalClient
	cfg    Config
}

// NewRedisBookingLock creates a new Redis booking lock. Zero config values fall back to DefaultConfig.
func NewRedisBookingLock(client redis.UniversalClient, cfg Config) adapter.BookingLock {
	def := DefaultConfig()
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = def.KeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = def.WaitTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	return &redisBookingLock{client: client, cfg: cfg}
}

// Acquire polls until the property key is set or WaitTimeout elapses.
func (l *redisBookingLock) Acquire(ctx context.Context, propertyID uuid.UUID) (func(context.Context) error, error) {
	key := l.cfg.KeyPrefix + propertyID.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.cfg.WaitTimeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.cfg.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire booking lock: %w", err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		if time.Now().After(deadline) {
			return nil, domainerror.NewBookingError(
				domainerror.ErrCodeBookingLockNotAcquired,
				"another booking for this property is being processed, try again",
				domainerror.ErrBookingLockNotAcquired,
			)
		}

		timer := time.NewTimer(l.cfg.RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *redisBookingLock) releaser(key, token string) func(context.Context) error {
	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to release booking lock: %w", err)
		}
		return nil
	}
}
