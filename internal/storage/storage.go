// Package storage defines the Storage interface, the connection pool every
// HTTP handler borrows from, and Open, which builds the configured backend.
//
// Handlers depend only on this interface. Switching databases means
// implementing it for the new backend; tests use the SQLite backend on a
// temporary file.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/people-api/internal/config"
	"github.com/aanand-mishra/people-api/internal/storage/postgres"
	"github.com/aanand-mishra/people-api/internal/storage/sqlite"
)

// Storage is a process-wide connection pool.
//
// It is created once at startup, shared by every handler, and closed once
// at shutdown after the HTTP server has drained.
type Storage interface {
	// Conn checks out one connection for the caller's exclusive use.
	// The caller must Close it to return it to the pool.
	Conn(ctx context.Context) (*sql.Conn, error)

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases every pooled connection.
	Close() error
}

var (
	_ Storage = (*postgres.Postgres)(nil)
	_ Storage = (*sqlite.SQLite)(nil)
)

// Open builds the backend selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.Database)
	case config.DriverSQLite:
		return sqlite.New(cfg.Storage.Path)
	default:
		return nil, fmt.Errorf("storage.Open: unknown driver %q", cfg.Storage.Driver)
	}
}
