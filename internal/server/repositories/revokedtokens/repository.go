// Package revokedtokens provides a PostgreSQL-backed denylist of token ids
// revoked at logout.
package revokedtokens

import (
	"context"
	"time"
)

// Repository stores revoked token ids until their natural expiry.
type Repository interface {
	// Create records tokenID as revoked until expiresAt. Revoking an already
	// revoked id is not an error.
	Create(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error

	// Exists reports whether tokenID is revoked and not yet expired at now.
	Exists(ctx context.Context, tokenID string, now time.Time) (bool, error)

	// DeleteExpired purges rows whose expiry is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
