package iodb

import (
	"errors"
	"testing"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5,
		"Should have 5 vars: database, host, port, user, database")
	assert.ErrorIs(t, gnErr.Err, originalErr)
	assert.Contains(t, gnErr.Err.Error(), "localhost:5432/test")
}

func TestErrorCodes(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"table check", TableCheckError(cause), errcode.DBTableCheckError},
		{"table exists", TableExistsCheckError("products", cause),
			errcode.DBTableExistsCheckError},
		{"query tables", QueryTablesError(cause), errcode.DBQueryTablesError},
		{"scan table", ScanTableError(cause), errcode.DBScanTableError},
		{"drop table", DropTableError("products", cause),
			errcode.DBDropTableError},
		{"transaction", TransactionError("commit", cause),
			errcode.DBTransactionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			require.NotNil(t, gnErr.Err)
			if tt.code != errcode.DBNotConnectedError {
				assert.ErrorIs(t, gnErr.Err, cause)
			}
		})
	}
}
