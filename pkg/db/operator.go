package db

import (
	"context"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management, exposes the pgxpool.Pool for
// bulk lookups outside of transactions, and runs batch writes inside one
// all-or-nothing transaction.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// RunInTx runs fn inside a transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise.
	RunInTx(ctx context.Context, fn func(pgx.Tx) error) error

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}

// Querier is the subset of pgx shared by pgxpool.Pool and pgx.Tx.
// Bulk writers accept a Querier so the same code runs inside or outside
// of a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(
		ctx context.Context,
		tableName pgx.Identifier,
		columnNames []string,
		rowSrc pgx.CopyFromSource,
	) (int64, error)
}
