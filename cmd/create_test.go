package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetCreateCmd_Descriptions verifies short and long
// descriptions.
func TestGetCreateCmd_Descriptions(t *testing.T) {
	cmd := getCreateCmd()

	assert.Equal(t, "create", cmd.Use)
	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "PostgreSQL")
	assert.Contains(t, cmd.Long, "GORM AutoMigrate")
	assert.Contains(t, cmd.Long, "Seeds")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetCreateCmd_ForceFlag verifies --force flag exists.
func TestGetCreateCmd_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")

	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
	assert.Contains(t, forceFlag.Usage, "drop")
}

// TestGetCreateCmd_Examples verifies examples in help.
func TestGetCreateCmd_Examples(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "Examples:")
	assert.Contains(t, helpText, "factodb create")
	assert.Contains(t, helpText, "factodb create --force")
	assert.Contains(t, helpText, "factodb create -f")
}

// TestGetCreateCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetCreateCmd_IndependentInstances(t *testing.T) {
	cmd1 := getCreateCmd()
	cmd2 := getCreateCmd()

	assert.NotSame(t, cmd1, cmd2)

	cmd1.Short = "test1"
	cmd2.Short = "test2"

	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}
