// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces identities for new entities.
type IDGenerator func() uuid.UUID

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the default Clock.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// Option customizes entity factories.
type Option func(*factoryConfig)

type factoryConfig struct {
	newID IDGenerator
	clock Clock
}

// WithIDGenerator overrides the default uuid.New generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *factoryConfig) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithClock overrides the system clock used by the entity for all time-dependent rules.
func WithClock(clock Clock) Option {
	return func(c *factoryConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func buildConfig(opts []Option) factoryConfig {
	cfg := factoryConfig{newID: uuid.New, clock: SystemClock}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Base holds identity and audit timestamps shared by all entities.
type Base struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	clock     Clock
}

func newBase(cfg factoryConfig) Base {
	now := cfg.clock().UTC()
	return Base{
		id:        cfg.newID(),
		createdAt: now,
		updatedAt: now,
		clock:     cfg.clock,
	}
}

func restoreBase(id uuid.UUID, createdAt, updatedAt time.Time, opts []Option) Base {
	cfg := buildConfig(opts)
	return Base{
		id:        id,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		clock:     cfg.clock,
	}
}

// ID returns the entity identity.
func (b *Base) ID() uuid.UUID {
	return b.id
}

// CreatedAt returns the creation timestamp.
func (b *Base) CreatedAt() time.Time {
	return b.createdAt
}

// UpdatedAt returns the last modification timestamp.
func (b *Base) UpdatedAt() time.Time {
	return b.updatedAt
}

func (b *Base) now() time.Time {
	if b.clock == nil {
		return SystemClock()
	}
	return b.clock().UTC()
}

// touch stamps updatedAt and returns the stamp.
func (b *Base) touch() time.Time {
	now := b.now()
	b.updatedAt = now
	return now
}

// Identifiable is implemented by every entity.
type Identifiable interface {
	ID() uuid.UUID
}

// SameIdentity reports whether two entities share a non-nil identity.
func SameIdentity(a, b Identifiable) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() != uuid.Nil && a.ID() == b.ID()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ClockFromOptions returns the clock opts configure, or SystemClock.
func ClockFromOptions(opts ...Option) Clock {
	return buildConfig(opts).clock
}
