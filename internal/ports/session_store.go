package ports

import (
	"context"
	"errors"
	"hospital-locator-service/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// Port: a boundary holding per-session selection state.
//
// Apply is the only mutation path: it reduces the stored snapshot with the
// given event atomically and returns the result, so concurrent requests for
// the same session never interleave partial updates.
type SessionStore interface {
	Create(ctx context.Context, id string, initial domain.State) error
	Get(ctx context.Context, id string) (domain.State, error)
	Apply(ctx context.Context, id string, ev domain.Event) (domain.State, error)
	Delete(ctx context.Context, id string) error
}
