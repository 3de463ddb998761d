package password

import (
	"context"
	"sync"
	"time"

	domainerror "github.com/fortify/backend/internal/domain/error"
)

// Debouncer delays exposure checks triggered by interactive typing. Each
// wait is keyed by input identity; a new wait for the same key supersedes
// the pending one, which is released immediately and never dispatched. Only
// the latest value's check reaches the range endpoint.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]chan struct{}
}

// NewDebouncer creates a Debouncer with the given delay. A zero delay makes
// Wait return immediately (still superseding older waiters).
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]chan struct{}),
	}
}

// Wait blocks for the debounce delay. It returns nil when the caller is
// still the latest arrival for key, ErrCheckSuperseded when a newer wait
// for the same key arrived in the meantime, or the context error when the
// caller went away.
func (d *Debouncer) Wait(ctx context.Context, key string) error {
	d.mu.Lock()
	if prev, ok := d.pending[key]; ok {
		close(prev)
	}
	cancel := make(chan struct{})
	d.pending[key] = cancel
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-cancel:
		return domainerror.NewPasswordError(
			domainerror.ErrCodeCheckSuperseded,
			"check superseded by newer input",
			domainerror.ErrCheckSuperseded,
		)
	case <-ctx.Done():
		d.clear(key, cancel)
		return ctx.Err()
	case <-timer.C:
	}

	d.clear(key, cancel)

	select {
	case <-cancel:
		// Superseded exactly at the timer boundary.
		return domainerror.NewPasswordError(
			domainerror.ErrCodeCheckSuperseded,
			"check superseded by newer input",
			domainerror.ErrCheckSuperseded,
		)
	default:
	}

	return nil
}

// clear removes the pending entry if it still belongs to this waiter.
func (d *Debouncer) clear(key string, cancel chan struct{}) {
	d.mu.Lock()
	if d.pending[key] == cancel {
		delete(d.pending, key)
	}
	d.mu.Unlock()
}
