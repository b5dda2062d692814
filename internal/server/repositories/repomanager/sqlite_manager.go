package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TusharG27x/codebuddy/internal/dbx"
	"github.com/TusharG27x/codebuddy/internal/filex"
	"github.com/TusharG27x/codebuddy/internal/server/migrations"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/stats"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/users"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenSQLite opens the backend database. ":memory:" gives a throwaway
// database; anything else is a file path created on demand.
func OpenSQLite(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		path, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, err
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
