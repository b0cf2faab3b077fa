// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token refresh and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/auth"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/folio/internal/server/revocation"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token pair
// - Refresh: mint a new access token from a refresh token
// - Logout: denylist the caller's tokens when a revocation store is set
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService
	revoked     revocation.Store

	dummyOnce   sync.Once
	dummyDigest string
}

// NewUserService wires the service. revoked may be nil, in which case logout
// only succeeds and tokens live until they expire.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenService, revoked revocation.Store) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		revoked:     revoked,
	}
}

// Register creates a regular account.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.create(ctx, username, email, password, false)
}

// CreateSuperuser creates an account with administrative rights.
func (s *UserService) CreateSuperuser(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.create(ctx, username, email, password, true)
}

func (s *UserService) create(ctx context.Context, username, email, password string, superuser bool) (*models.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Email: email, HashedPassword: digest, IsSuperuser: superuser}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies credentials and returns a fresh token pair. Unknown email,
// inactive account and wrong password all yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same bcrypt time as a real comparison
			_, _ = s.hasher.Verify(password, s.dummy())
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Verify(password, user.HashedPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if !ok || !user.IsActive {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return pair, nil
}

// Refresh mints a new access token. The refresh token is returned unchanged;
// it stays valid until it expires or is revoked at logout.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	access, p, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevoked(ctx, p.TokenID); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Me returns the account behind the principal.
func (s *UserService) Me(ctx context.Context, p *auth.Principal) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, p.UserID)
}

// Logout revokes the caller's access token and, when given, a refresh token
// that must belong to the same user.
func (s *UserService) Logout(ctx context.Context, p *auth.Principal, refreshToken string) error {
	var refresh *auth.Principal
	if refreshToken != "" {
		rp, err := s.tokens.Verify(refreshToken, auth.RefreshToken)
		if err != nil {
			return err
		}
		if rp.UserID != p.UserID {
			return fmt.Errorf("%w: refresh token belongs to another user", common.ErrorForbidden)
		}
		refresh = rp
	}

	if s.revoked == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, p.TokenID, p.UserID, p.ExpiresAt); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if refresh != nil {
		if err := s.revoked.Revoke(ctx, refresh.TokenID, refresh.UserID, refresh.ExpiresAt); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
	}
	return nil
}

// Promote grants superuser rights to the account with the given email.
func (s *UserService) Promote(ctx context.Context, email string) error {
	return s.repomanager.Users(s.db).SetSuperuser(ctx, email, true)
}

// IsSuperuser reports whether the principal's account has admin rights.
func (s *UserService) IsSuperuser(ctx context.Context, p *auth.Principal) (bool, error) {
	u, err := s.Me(ctx, p)
	if err != nil {
		return false, err
	}
	return u.IsSuperuser && u.IsActive, nil
}

// --- helpers below ---

func (s *UserService) checkRevoked(ctx context.Context, tokenID string) error {
	if s.revoked == nil || tokenID == "" {
		return nil
	}
	revoked, err := s.revoked.IsRevoked(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("%w: revocation lookup: %v", common.ErrorInternal, err)
	}
	if revoked {
		return common.ErrTokenRevoked
	}
	return nil
}

// dummy returns a digest of a random-looking password, computed once.
func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		d, err := s.hasher.Hash("folio-timing-equalizer")
		if err == nil {
			s.dummyDigest = d
		}
	})
	return s.dummyDigest
}
