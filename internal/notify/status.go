package notify

import (
	"time"

	"github.com/erazemk/artverse/internal/model"
)

// Kind classifies a status message.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is the message on a status channel. ExpiresAt is zero for
// errors, which stay until replaced or cleared.
type Notification struct {
	Message   string
	Kind      Kind
	ExpiresAt time.Time
}

// Notifier is anything that can surface a status message.
type Notifier interface {
	Show(message string, kind Kind)
}

// Status is the generic status message channel.
type Status struct {
	banner *Banner[Notification]
	clock  Clock
	ttl    time.Duration
}

// NewStatus returns a status channel whose non-error messages clear after
// ttl (StatusTTL if ttl <= 0).
func NewStatus(clock Clock, ttl time.Duration) *Status {
	if clock == nil {
		clock = SystemClock
	}
	if ttl <= 0 {
		ttl = StatusTTL
	}
	return &Status{banner: NewBanner[Notification](clock), clock: clock, ttl: ttl}
}

// Show replaces the current message.
func (s *Status) Show(message string, kind Kind) {
	n := Notification{Message: message, Kind: kind}
	if kind == KindError {
		s.banner.Show(n, 0)
		return
	}
	n.ExpiresAt = s.clock.Now().Add(s.ttl)
	s.banner.Show(n, s.ttl)
}

func (s *Status) Info(message string)    { s.Show(message, KindInfo) }
func (s *Status) Success(message string) { s.Show(message, KindSuccess) }
func (s *Status) Error(message string)   { s.Show(message, KindError) }

// Current returns the message being shown, if any.
func (s *Status) Current() (Notification, bool) {
	return s.banner.Current()
}

// Clear removes the message.
func (s *Status) Clear() {
	s.banner.Clear()
}

// Confirmation is the "added to cart" banner, keyed by the added artwork.
type Confirmation struct {
	banner *Banner[model.Artwork]
	ttl    time.Duration
}

// NewConfirmation returns a confirmation banner that clears after ttl
// (ConfirmTTL if ttl <= 0).
func NewConfirmation(clock Clock, ttl time.Duration) *Confirmation {
	if ttl <= 0 {
		ttl = ConfirmTTL
	}
	return &Confirmation{banner: NewBanner[model.Artwork](clock), ttl: ttl}
}

// Added shows the confirmation for a.
func (c *Confirmation) Added(a model.Artwork) {
	c.banner.Show(a, c.ttl)
}

// Current returns the artwork being confirmed, if any.
func (c *Confirmation) Current() (model.Artwork, bool) {
	return c.banner.Current()
}

// Clear hides the confirmation.
func (c *Confirmation) Clear() {
	c.banner.Clear()
}
