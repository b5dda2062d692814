package repomanager

import (
	"context"
	"database/sql"

	"github.com/TusharG27x/codebuddy/internal/dbx"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/stats"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DB handle, which may
// be a transaction from dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Stats(db dbx.DBTX) stats.Repository
}
