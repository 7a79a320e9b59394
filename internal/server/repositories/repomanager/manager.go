package repomanager

import (
	"context"
	"database/sql"

	"socialnet/internal/dbx"
	"socialnet/internal/server/repositories/follows"
	"socialnet/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX (either
// the pooled connection or an open transaction) and exposes the schema
// migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Follows(db dbx.DBTX) follows.Repository
}
