// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation failed")

	// Credential errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedDigest    = errors.New("malformed password digest")
	ErrPasswordTooLong    = fmt.Errorf("%w: password exceeds 72 bytes", ErrorValidation)

	// Auth errors (invalid or malformed token).
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenKindMismatch = errors.New("token kind mismatch")
	ErrTokenRevoked      = errors.New("token revoked")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// IsAuthFailure reports whether err means the caller could not be
// authenticated (missing, invalid, expired, revoked or wrong-kind token).
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrorUnauthorized) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenRevoked) ||
		errors.Is(err, ErrTokenKindMismatch) ||
		errors.Is(err, ErrInvalidCredentials)
}
