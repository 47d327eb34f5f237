// Package scheduler runs periodic booking maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rental-marketplace/backend/internal/application/usecase/booking"
)

// Sweeper completes bookings whose stay has ended.
type Sweeper interface {
	Execute(ctx context.Context) (*booking.CompletePastBookingsOutput, error)
}

// Config holds configuration for the completion scheduler.
type Config struct {
	Schedule string        // Standard 5-field cron expression or descriptor such as "@hourly"
	Timeout  time.Duration // Upper bound of a single sweep
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		Schedule: "@hourly",
		Timeout:  5 * time.Minute,
	}
}

// CompletionScheduler runs the booking completion sweep on a cron schedule.
type CompletionScheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	cfg     Config
	baseCtx context.Context
}

// NewCompletionScheduler creates a scheduler. It fails when the schedule cannot be parsed.
func NewCompletionScheduler(sweeper Sweeper, cfg Config) (*CompletionScheduler, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultConfig().Schedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	logger := slogLogger{}
	s := &CompletionScheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		sweeper: sweeper,
		cfg:     cfg,
		baseCtx: context.Background(),
	}

	if _, err := s.cron.AddFunc(cfg.Schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid completion schedule %q: %w", cfg.Schedule, err)
	}
	return s, nil
}

// Start runs the cron loop. It blocks until the context is cancelled and in-flight sweeps finish.
func (s *CompletionScheduler) Start(ctx context.Context) {
	s.baseCtx = ctx
	slog.Info("Completion scheduler started", "schedule", s.cfg.Schedule)

	s.cron.Start()
	<-ctx.Done()

	slog.Info("Completion scheduler shutting down")
	<-s.cron.Stop().Done()
}

// RunOnce performs a single sweep immediately.
func (s *CompletionScheduler) RunOnce(ctx context.Context) (*booking.CompletePastBookingsOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	return s.sweeper.Execute(ctx)
}

func (s *CompletionScheduler) run() {
	if _, err := s.RunOnce(s.baseCtx); err != nil {
		slog.Error("Completion sweep failed", "error", err)
	}
}

// slogLogger adapts slog to cron.Logger.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
