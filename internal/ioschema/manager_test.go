package ioschema_test

import (
	"context"
	"testing"

	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/internal/ioschema"
	"github.com/chemexpo/factodb/internal/iotesting"
	"github.com/chemexpo/factodb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewManager_CreatesManager verifies manager creation.
func TestNewManager_CreatesManager(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := ioschema.NewManager(op)
	require.NotNil(t, mgr)
}

func TestManager_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	cfg := iotesting.GetTestConfig()
	assert.Error(t, mgr.Create(context.Background(), cfg))
	assert.Error(t, mgr.Migrate(context.Background(), cfg))
}

func TestManager_CreateAndMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	require.NoError(t, op.DropAllTables(ctx))

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx, cfg))

	for _, tbl := range []string{
		"extracted_texts", "raw_chems", "products", "duplicate_products",
		"product_to_pucs", "classification_methods",
	} {
		exists, err := op.TableExists(ctx, tbl)
		require.NoError(t, err)
		assert.True(t, exists, tbl)
	}

	// running migrate twice keeps seeded rows unique
	require.NoError(t, mgr.Migrate(ctx, cfg))
	var count int
	err := op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM classification_methods").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(schema.ClassificationMethods()), count)
}
