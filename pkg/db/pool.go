// Package db provides the connection pool and schema bootstrap for the
// todo datastore. The pool is a thin, fail-fast layer over database/sql;
// the driver (sqlite3 or postgres) is chosen by configuration and must be
// blank-imported by the binary.
package db

import (
	"context"
	"database/sql"
	"time"
)

// PoolConfig configures the database connection pool.
type PoolConfig struct {
	// DSN is the database connection string.
	DSN string

	// DriverName is the database/sql driver name ("sqlite3" or "postgres").
	DriverName string

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration

	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns pool defaults suitable for a single service
// instance.
func DefaultPoolConfig(dsn, driverName string) PoolConfig {
	return PoolConfig{
		DSN:             dsn,
		DriverName:      driverName,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// Error represents a database configuration or state error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Pool wraps a configured *sql.DB.
type Pool struct {
	db     *sql.DB
	config PoolConfig
}

// NewPool opens and verifies a connection pool. Configuration is validated
// before anything is opened, and the first connection is pinged so a bad
// DSN fails at startup instead of on the first request.
func NewPool(config PoolConfig) (*Pool, error) {
	if config.DSN == "" {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "DSN cannot be empty"}
	}
	if config.DriverName == "" {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "DriverName cannot be empty"}
	}
	if config.MaxOpenConns <= 0 {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "MaxOpenConns must be positive"}
	}
	if config.MaxIdleConns < 0 {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "MaxIdleConns cannot be negative"}
	}
	if config.MaxIdleConns > config.MaxOpenConns {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "MaxIdleConns cannot exceed MaxOpenConns"}
	}
	if config.ConnMaxLifetime < 0 {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "ConnMaxLifetime cannot be negative"}
	}
	if config.ConnMaxIdleTime < 0 {
		return nil, &Error{Code: "INVALID_CONFIG", Message: "ConnMaxIdleTime cannot be negative"}
	}

	db, err := sql.Open(config.DriverName, config.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Pool{db: db, config: config}, nil
}

// DB returns the underlying *sql.DB.
func (p *Pool) DB() *sql.DB {
	if p == nil || p.db == nil {
		panic("pool not initialized")
	}
	return p.db
}

// Driver returns the configured driver name.
func (p *Pool) Driver() string {
	return p.config.DriverName
}

// Close closes the connection pool, releasing all pooled connections.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return &Error{Code: "INVALID_STATE", Message: "pool not initialized"}
	}
	return p.db.Close()
}

// Ping verifies the datastore is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.db == nil {
		return &Error{Code: "INVALID_STATE", Message: "pool not initialized"}
	}
	return p.db.PingContext(ctx)
}

// Stats returns pool statistics.
func (p *Pool) Stats() sql.DBStats {
	if p == nil || p.db == nil {
		return sql.DBStats{}
	}
	return p.db.Stats()
}
