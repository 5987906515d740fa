package repomanager

import (
	"context"
	"database/sql"

	"github.com/booktracker-app/server/internal/dbx"
	"github.com/booktracker-app/server/internal/server/auth"
	"github.com/booktracker-app/server/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook. Passing a *sql.Tx instead of the *sql.DB
// yields transactional repositories.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Revocations(db dbx.DBTX) auth.RevocationRegistry
	RunMigrations(ctx context.Context, db *sql.DB) error
}
