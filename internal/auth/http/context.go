// Package http provides the session endpoints and the authentication gateway middleware.
package http

import (
	"context"

	"github.com/google/uuid"
)

// userIDKey is a context key type for storing the authenticated user id.
type userIDKey struct{}

// WithUserID stores the authenticated user id in the context.
// It is called by AuthenticationMiddleware after a token verifies.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// GetUserID retrieves the authenticated user id from the context.
// Returns (id, true) if present, or (uuid.Nil, false) if no user was set.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}
