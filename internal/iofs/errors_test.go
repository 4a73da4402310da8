package iofs

import (
	"errors"
	"testing"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
		msg  string
	}{
		{"create dir", CreateDirError("/test/dir", cause),
			errcode.CreateDirError, "/test/dir", "cannot create"},
		{"copy file", CopyFileError("/test/config.yaml", cause),
			errcode.CopyFileError, "/test/config.yaml", "cannot copy"},
		{"read file", ReadFileError("/data/products.csv", cause),
			errcode.ReadFileError, "/data/products.csv", "cannot read"},
		{"write file", WriteFileError("/data/report.json", cause),
			errcode.WriteFileError, "/data/report.json", "cannot write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			require.NotNil(t, gnErr.Err)
			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), tt.msg)
			assert.Contains(t, gnErr.Err.Error(), "from",
				"Error should mention caller context")
		})
	}
}
