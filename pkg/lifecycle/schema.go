package lifecycle

import (
	"context"

	"github.com/chemexpo/factodb/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate
	// and seeds reference rows such as classification methods.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version using GORM
	// AutoMigrate. Reference rows missing from the database are seeded,
	// existing ones are kept.
	Migrate(ctx context.Context, cfg *config.Config) error
}
