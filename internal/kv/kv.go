// Package kv provides the durable string-keyed store the workout slots and
// the activity stamp are persisted in.
package kv

import (
	"context"
	"fmt"

	"github.com/claude/push/internal/config"
)

// Store is a durable key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// SetMulti stores all entries or none of them.
	SetMulti(ctx context.Context, entries map[string]string) error
	Close() error
}

// Open returns the store selected by cfg.Driver. For postgres the schema
// migrations are applied first.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemory(), nil
	case config.DriverSQLite:
		return OpenSQLite(cfg.Path)
	case config.DriverPostgres:
		dsn := cfg.Postgres.DSN()
		if err := RunMigrations(dsn); err != nil {
			return nil, err
		}
		return OpenPostgres(ctx, dsn)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
