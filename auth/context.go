package auth

import (
	"chat-server/domain"
	"context"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity attaches the authenticated identity of a connection to ctx.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the identity attached by the gatekeeper.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok && identity.ID != ""
}
