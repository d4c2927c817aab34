package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/pkg/enums"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// Identity is the authenticated caller, loaded fresh from the database on
// every request so deactivations and blocks take effect immediately.
type Identity struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Role      enums.UserRole
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(ctxIdentity).(Identity)
	return identity, ok
}

// WithIdentity injects the caller identity into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
