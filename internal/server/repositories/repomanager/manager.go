package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/folio/internal/dbx"
	"github.com/dmitrijs2005/folio/internal/server/repositories/posts"
	"github.com/dmitrijs2005/folio/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/folio/internal/server/repositories/projects"
	"github.com/dmitrijs2005/folio/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/folio/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so services can
// use the same constructors against *sql.DB or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Projects(db dbx.DBTX) projects.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
