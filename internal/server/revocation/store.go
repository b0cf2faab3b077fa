// Package revocation keeps the denylist of token ids revoked at logout.
// Entries live only until the token would have expired anyway.
package revocation

import (
	"context"
	"time"
)

// Store is consulted by the auth gate on every authenticated request.
type Store interface {
	// Revoke denylists tokenID until the given instant. Revoking an id that
	// has already expired is a no-op.
	Revoke(ctx context.Context, tokenID string, userID int64, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
