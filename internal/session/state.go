// Package session holds the transient per-page-view UI state (mobile menu,
// booking form, toast slot) and the flow that moves a booking through it.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/paramount-detail-site/internal/booking"
	"github.com/wolfman30/paramount-detail-site/internal/toast"
)

// ErrViewNotFound is returned for unknown or expired page views.
var ErrViewNotFound = errors.New("session: view not found")

// State is everything one rendered page remembers between requests.
type State struct {
	ID        string       `json:"id"`
	MenuOpen  bool         `json:"menu_open"`
	Form      booking.Form `json:"form"`
	Toast     toast.Slot   `json:"toast"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewState returns a fresh page view with a new id.
func NewState(defaultPackage string, now time.Time) State {
	return State{
		ID:        uuid.NewString(),
		Form:      booking.NewForm(defaultPackage),
		CreatedAt: now.UTC(),
	}
}

// Store persists page views. Update must apply fn atomically per id: when fn
// returns an error nothing is written.
type Store interface {
	Create(ctx context.Context, st State) error
	Get(ctx context.Context, id string) (State, error)
	Update(ctx context.Context, id string, fn func(*State) error) (State, error)
}
