package mock

import (
	"sync"
	"time"
)

// Time is a clock that scenarios can pin to a date. It keeps ticking from the pinned instant.
type Time struct {
	mu      sync.RWMutex
	current time.Time
	setAt   time.Time
}

func NewTime() *Time {
	now := time.Now().UTC()
	return &Time{current: now, setAt: now}
}

// SetCurrentTime pins the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime.UTC()
	t.setAt = time.Now()
}

// Reset returns the clock to the wall clock.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current.Add(time.Since(t.setAt))
}
