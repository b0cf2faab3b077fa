// Package users declares the account repository and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

// Repository stores accounts. Lookups return common.ErrorNotFound when no
// row matches; Create returns common.ErrorAlreadyExists on a duplicate
// email or username.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetSuperuser(ctx context.Context, email string, superuser bool) error
}
