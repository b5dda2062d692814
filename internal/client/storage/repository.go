// Package storage is the client's durable key/value layer. Every value is a
// whole JSON record stored under a single key; there are no partial writes.
//
// Backends: SQLite (default, goose-migrated metadata table), Redis and an
// in-memory map for tests and throwaway runs.
package storage

import "context"

// Repository stores opaque values by key.
//
// Get returns (nil, nil) when the key is absent. Delete of an absent key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
