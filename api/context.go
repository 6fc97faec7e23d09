package api

import (
	"context"

	"github.com/google/uuid"
)

type keyType string

const identityKey keyType = "identity"

// Identity is the authenticated caller attached to the request context by the
// bearer middleware.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// ctxWithIdentity adds the authenticated caller to the context
func ctxWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// identityFromCtx retrieves the authenticated caller, if any
func identityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
