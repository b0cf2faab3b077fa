// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. HashedPassword never leaves the server.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	IsActive       bool
	IsSuperuser    bool
	CreatedAt      time.Time
}

// RevokedToken is a denylisted token id, kept until the token would have
// expired anyway.
type RevokedToken struct {
	TokenID   string
	UserID    int64
	ExpiresAt time.Time
}
