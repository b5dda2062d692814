package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/TusharG27x/codebuddy/internal/client/migrations"
	"github.com/TusharG27x/codebuddy/internal/filex"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	_ "modernc.org/sqlite"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	// SQLite database file.
	DSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open returns the Repository described by opts. SQLite databases are
// created on first use and migrated to the latest schema.
func Open(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		db, err := OpenSQLite(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return NewSQLiteRepository(db), nil
	case BackendRedis:
		client, err := connectRedis(ctx, opts)
		if err != nil {
			return nil, err
		}
		return NewRedisRepository(client), nil
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// OpenSQLite opens (creating if needed) the database at dsn and applies the
// embedded migrations.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under the debounce goroutine.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies every pending migration. Running it twice is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func connectRedis(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
