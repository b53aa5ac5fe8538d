// Package identity carries the authenticated admin through a request
// context. Absence of an identity means the request is anonymous.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the signed-in admin user as seen by request handlers.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity carried by ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
