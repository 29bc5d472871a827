package service

import (
	"context"
	"errors"

	"bookkeep/internal/domain/entity"
)

// ErrSessionNotFound is returned when a token resolves to no live session,
// either because it never existed or because it expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore maps opaque tokens to authenticated principals. Implementations
// must treat expired sessions as absent.
type SessionStore interface {
	// Create mints a new session for the user and returns it, token included.
	Create(ctx context.Context, user *entity.User) (*entity.Session, error)

	// Get resolves a token to its live session, or ErrSessionNotFound.
	Get(ctx context.Context, token string) (*entity.Session, error)

	// Delete discards the session for the token. Unknown tokens are a no-op.
	Delete(ctx context.Context, token string) error
}
