// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// DSN builds a PostgreSQL connection string.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// RunInTx runs fn in a transaction. The transaction is committed when fn
// succeeds and rolled back otherwise, including when ctx is canceled.
func (p *pgxOperator) RunInTx(
	ctx context.Context,
	fn func(pgx.Tx) error,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return TransactionError("begin", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback(context.Background())
	}()

	if err = fn(tx); err != nil {
		slog.Debug("Rolling back transaction", "error", err)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError("commit", err)
	}
	return nil
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}

	return hasTables, nil
}

// DropAllTables drops all tables in the public schema.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return ScanTableError(err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return ScanTableError(err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf(
			"DROP TABLE IF EXISTS %s CASCADE",
			pgx.Identifier{table}.Sanitize(),
		)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
