package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/common"
)

// Verifier is the part of TokenService the gate depends on.
type Verifier interface {
	Verify(token string, expected TokenKind) (*Principal, error)
}

// RevocationChecker answers whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Gate turns an Authorization header into a Principal.
type Gate struct {
	tokens  Verifier
	revoked RevocationChecker
}

// NewGate builds a gate. revoked may be nil when logout is stateless.
func NewGate(tokens Verifier, revoked RevocationChecker) *Gate {
	return &Gate{tokens: tokens, revoked: revoked}
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate requires a valid, unrevoked access token. Every failure
// matches common.IsAuthFailure except a revocation store outage, which is
// reported as common.ErrorInternal so callers fail closed.
func (g *Gate) Authenticate(ctx context.Context, header string) (*Principal, error) {
	token, ok := BearerToken(header)
	if !ok {
		return nil, fmt.Errorf("%w: missing bearer token", common.ErrorUnauthorized)
	}

	p, err := g.tokens.Verify(token, AccessToken)
	if err != nil {
		return nil, err
	}

	if err := g.checkRevoked(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Optional is the anonymous-friendly variant: any failure yields nil.
func (g *Gate) Optional(ctx context.Context, header string) *Principal {
	if header == "" {
		return nil
	}
	p, err := g.Authenticate(ctx, header)
	if err != nil {
		return nil
	}
	return p
}

func (g *Gate) checkRevoked(ctx context.Context, p *Principal) error {
	if g.revoked == nil || p.TokenID == "" {
		return nil
	}
	revoked, err := g.revoked.IsRevoked(ctx, p.TokenID)
	if err != nil {
		return fmt.Errorf("%w: revocation lookup: %v", common.ErrorInternal, err)
	}
	if revoked {
		return common.ErrTokenRevoked
	}
	return nil
}
