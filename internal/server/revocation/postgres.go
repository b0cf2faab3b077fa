package revocation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
)

// PostgresStore keeps revoked ids in the revoked_tokens table and purges
// expired rows whenever a new id is revoked.
type PostgresStore struct {
	db   *sql.DB
	repo repomanager.RepositoryManager
	now  func() time.Time
}

func NewPostgresStore(db *sql.DB, repo repomanager.RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, repo: repo, now: time.Now}
}

func (s *PostgresStore) Revoke(ctx context.Context, tokenID string, userID int64, until time.Time) error {
	now := s.now()
	if !until.After(now) {
		return nil
	}

	r := s.repo.RevokedTokens(s.db)
	if _, err := r.DeleteExpired(ctx, now); err != nil {
		return fmt.Errorf("purge revoked tokens: %w", err)
	}
	return r.Create(ctx, tokenID, userID, until)
}

func (s *PostgresStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.repo.RevokedTokens(s.db).Exists(ctx, tokenID, s.now())
}
