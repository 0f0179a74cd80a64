package service

// limiter.go bounds concurrent import processing.
//
// Imports parse whole files in memory, so an unbounded number of parallel
// requests can exhaust the process. A semaphore caps them at a configurable
// maximum; requests that cannot get a slot within maxWait fail with
// ErrTooManyImports and the client retries later.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyImports is returned when all import slots are occupied and the
// wait timeout expires.
var ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

// ImportLimiter restricts how many imports run at once.
type ImportLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active int
}

// NewImportLimiter allows at most maxConcurrent simultaneous imports.
// Requests that cannot acquire a slot within maxWait receive
// ErrTooManyImports.
func NewImportLimiter(maxConcurrent int, maxWait time.Duration) *ImportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &ImportLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire claims an import slot, waiting up to the configured timeout.
// Callers must Release when done.
func (l *ImportLimiter) Acquire(ctx context.Context) error {
	waitCtx := ctx
	if l.maxWait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.maxWait)
		defer cancel()
	}

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyImports
	}
}

// Release returns a previously acquired slot.
func (l *ImportLimiter) Release() {
	l.mu.Lock()
	if l.active > 0 {
		l.active--
	}
	l.mu.Unlock()
	<-l.slots
}

// Active returns how many imports currently hold a slot.
func (l *ImportLimiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Capacity returns the maximum number of concurrent imports.
func (l *ImportLimiter) Capacity() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no imports are active or the context expires.
// Used during graceful shutdown.
func (l *ImportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
