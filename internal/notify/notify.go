// Package notify manages transient user-facing banners.
//
// A Banner holds at most one payload. Showing a new payload replaces the
// current one and cancels its pending auto-clear; there is no queue.
package notify

import (
	"sync"
	"time"
)

// Default lifetimes.
const (
	StatusTTL  = 5 * time.Second
	ConfirmTTL = 3 * time.Second
)

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Clock schedules auto-clears. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Banner is a single-slot transient value with optional expiry.
type Banner[T any] struct {
	mu        sync.Mutex
	clock     Clock
	payload   T
	set       bool
	expiresAt time.Time
	gen       uint64
	timer     Timer
}

// NewBanner returns an empty banner driven by clock (SystemClock if nil).
func NewBanner[T any](clock Clock) *Banner[T] {
	if clock == nil {
		clock = SystemClock
	}
	return &Banner[T]{clock: clock}
}

// Show replaces the current payload. A positive ttl schedules an
// auto-clear; ttl <= 0 keeps the payload until it is replaced or cleared.
func (b *Banner[T]) Show(payload T, ttl time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.gen++
	b.payload = payload
	b.set = true
	b.expiresAt = time.Time{}

	if ttl <= 0 {
		return
	}

	gen := b.gen
	b.expiresAt = b.clock.Now().Add(ttl)
	b.timer = b.clock.AfterFunc(ttl, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		// A newer Show owns the slot now.
		if b.gen != gen {
			return
		}
		b.resetLocked()
	})
}

// Current returns the payload, if any.
func (b *Banner[T]) Current() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.payload, b.set
}

// ExpiresAt is when the current payload auto-clears; zero if it persists
// or the banner is empty.
func (b *Banner[T]) ExpiresAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.expiresAt
}

// Clear empties the banner and cancels any pending auto-clear.
func (b *Banner[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
	b.gen++
	b.resetLocked()
}

func (b *Banner[T]) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Banner[T]) resetLocked() {
	var zero T
	b.payload = zero
	b.set = false
	b.expiresAt = time.Time{}
	b.timer = nil
}
