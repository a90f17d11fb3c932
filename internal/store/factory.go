package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config holds storage configuration
type Config struct {
	Driver string // "sqlite", "memory", "postgres", "mongodb"

	// SQLite
	SQLitePath string

	// Postgres
	PostgresDSN string

	// MongoDB
	MongoDBURI      string
	MongoDBDatabase string
}

// Open creates a Backend based on config
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Driver {
	case "", "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		return NewSQLite(cfg.SQLitePath)

	case "memory":
		return NewMemBackend(), nil

	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres DSN is required")
		}
		return NewPostgres(ctx, cfg.PostgresDSN)

	case "mongodb":
		if cfg.MongoDBURI == "" {
			return nil, fmt.Errorf("mongodb URI is required")
		}
		if cfg.MongoDBDatabase == "" {
			cfg.MongoDBDatabase = "agent_console"
		}
		return NewMongoDB(ctx, cfg.MongoDBURI, cfg.MongoDBDatabase)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
