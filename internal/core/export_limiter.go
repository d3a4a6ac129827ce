package core

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyExports is returned when every export slot stays busy for the
// limiter's whole wait time.
var ErrTooManyExports = errors.New("too many concurrent exports, please try again later")

// Export limiter defaults.
const (
	DefaultMaxConcurrentExports = 4
	DefaultExportWait           = 10 * time.Second
)

// ExportLimiter bounds the number of exports streaming at once. An export
// walks and renders every matching record, so unbounded parallel exports can
// starve interactive queries.
type ExportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
}

// NewExportLimiter allows maxConcurrent exports at once. Callers wait up to
// maxWait for a slot. Non-positive arguments fall back to the defaults.
func NewExportLimiter(maxConcurrent int, maxWait time.Duration) *ExportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExports
	}
	if maxWait <= 0 {
		maxWait = DefaultExportWait
	}
	return &ExportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. It returns ctx.Err() if ctx ends first and
// ErrTooManyExports if the wait time runs out. Every successful Acquire
// must be paired with Release.
func (l *ExportLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyExports
	}
}

// Release frees a slot taken by Acquire.
func (l *ExportLimiter) Release() {
	<-l.slots
}

// Active returns the number of exports holding a slot.
func (l *ExportLimiter) Active() int {
	return len(l.slots)
}

// MaxConcurrent returns the slot count.
func (l *ExportLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no export holds a slot or ctx ends.
func (l *ExportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
