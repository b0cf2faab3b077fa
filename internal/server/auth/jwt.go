// Package auth implements credential hashing, JWT issuance/verification and
// the bearer-token gate placed in front of protected routes.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/folio/internal/common"
)

// TokenKind separates access tokens from refresh tokens so one can never be
// replayed as the other.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims is the JWT payload: registered claims (sub, exp, iat, jti) plus
// the account email and the token kind.
type Claims struct {
	jwt.RegisteredClaims
	Email string    `json:"email"`
	Type  TokenKind `json:"type"`
}

// Principal is the identity recovered from a verified token.
type Principal struct {
	UserID    int64
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

var hmacMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// TokenService signs and verifies tokens with one HMAC secret and one
// algorithm. It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now; used by tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService validates its inputs once so that no request can observe
// a half-configured service.
func NewTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	method, ok := hmacMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	s := &TokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// IssueAccess mints an access token for the user.
func (s *TokenService) IssueAccess(userID int64, email string) (string, error) {
	return s.issue(userID, email, AccessToken, s.accessTTL, s.now())
}

// IssueRefresh mints a refresh token for the user.
func (s *TokenService) IssueRefresh(userID int64, email string) (string, error) {
	return s.issue(userID, email, RefreshToken, s.refreshTTL, s.now())
}

// IssuePair mints both tokens with the same issue time.
func (s *TokenService) IssuePair(userID int64, email string) (*TokenPair, error) {
	now := s.now()
	access, err := s.issue(userID, email, AccessToken, s.accessTTL, now)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issue(userID, email, RefreshToken, s.refreshTTL, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) issue(userID int64, email string, kind TokenKind, ttl time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(s.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Email: email,
		Type:  kind,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and kind, in that order.
//
// Errors: common.ErrTokenExpired once now >= exp, common.ErrTokenKindMismatch
// when the token is of the other kind, common.ErrInvalidToken otherwise.
func (s *TokenService) Verify(tokenString string, expected TokenKind) (*Principal, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	switch claims.Type {
	case AccessToken, RefreshToken:
	default:
		return nil, fmt.Errorf("%w: unknown token type %q", common.ErrInvalidToken, claims.Type)
	}
	if claims.Type != expected {
		return nil, common.ErrTokenKindMismatch
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: bad subject", common.ErrInvalidToken)
	}

	return &Principal{
		UserID:    userID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Refresh verifies a refresh token and mints a new access token for the same
// principal. The refresh token itself stays valid until it expires.
func (s *TokenService) Refresh(refreshToken string) (string, *Principal, error) {
	p, err := s.Verify(refreshToken, RefreshToken)
	if err != nil {
		return "", nil, err
	}
	access, err := s.IssueAccess(p.UserID, p.Email)
	if err != nil {
		return "", nil, err
	}
	return access, p, nil
}

func (s *TokenService) keyFunc(t *jwt.Token) (any, error) {
	if t.Method.Alg() != s.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
	}
	return s.secret, nil
}
