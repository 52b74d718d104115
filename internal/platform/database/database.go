// Package database provides PostgreSQL connection management via pgx and
// the embedded goose migrations of the submissions schema.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationName is reported to Postgres in pg_stat_activity.
const ApplicationName = "wochenkontext"

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Option adjusts the pool configuration before connecting.
type Option func(*pgxpool.Config)

// WithPoolSize bounds the number of pooled connections.
func WithPoolSize(maxConns, minConns int) Option {
	return func(cfg *pgxpool.Config) {
		if maxConns > 0 {
			cfg.MaxConns = int32(maxConns)
		}
		if minConns >= 0 && minConns <= int(cfg.MaxConns) {
			cfg.MinConns = int32(minConns)
		}
	}
}

// WithApplicationName overrides ApplicationName, e.g. for the CLI.
func WithApplicationName(name string) Option {
	return func(cfg *pgxpool.Config) {
		cfg.ConnConfig.RuntimeParams["application_name"] = name
	}
}

// ParseURL validates a PostgreSQL connection URL and returns the pool
// configuration with defaults and opts applied.
func ParseURL(url string, opts ...Option) (*pgxpool.Config, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg, nil
}

// New connects a pool and verifies it with a ping.
func New(ctx context.Context, url string, opts ...Option) (*DB, error) {
	cfg, err := ParseURL(url, opts...)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// HealthCheck pings the pool; used by the readiness endpoint.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
