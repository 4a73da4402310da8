// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/chemexpo/factodb/pkg/db"
	"github.com/chemexpo/factodb/pkg/lifecycle"
	"github.com/chemexpo/factodb/pkg/schema"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema using
// GORM AutoMigrate and seeds reference rows.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := openGORM(ctx, m.operator.Pool())
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := schema.Seed(gormDB); err != nil {
		return SeedError(err)
	}

	slog.Info("Schema created", "tables", len(schema.AllModels()))
	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. Missing reference rows are added.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := openGORM(ctx, m.operator.Pool())
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := schema.Seed(gormDB); err != nil {
		return SeedError(err)
	}

	slog.Info("Schema migrated", "tables", len(schema.AllModels()))
	return nil
}
