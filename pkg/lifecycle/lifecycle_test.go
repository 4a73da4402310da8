package lifecycle_test

import (
	"testing"

	"github.com/chemexpo/factodb/internal/ioclassify"
	"github.com/chemexpo/factodb/internal/iodb"
	"github.com/chemexpo/factodb/internal/ioingest"
	"github.com/chemexpo/factodb/internal/ioschema"
	"github.com/chemexpo/factodb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestContracts ensures that implementations satisfy lifecycle interfaces.
// The assignments are compile-time checks.
func TestContracts(t *testing.T) {
	var _ lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	var _ lifecycle.Ingester = &ioingest.Ingester{}
	var _ lifecycle.Classifier = &ioclassify.Classifier{}

	assert.True(t, true, "implementations should satisfy lifecycle interfaces")
}
