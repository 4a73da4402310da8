package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "factodb", cmd.Use,
		"Command name should be factodb")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3")
	assert.Contains(t, output, "abc123")
	assert.NotContains(t, output, "factodb version:",
		"Should use custom version template")
}

// TestGetRootCmd_ShortVersionFlag verifies -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "factodb")
	assert.Contains(t, helpText, "PostgreSQL")
	assert.Contains(t, helpText, "FACTODB_DATABASE_HOST")
	for _, sub := range []string{"create", "migrate", "ingest", "stubs", "classify"} {
		assert.Contains(t, helpText, sub, "Help should list %s", sub)
	}
}

// TestGetRootCmd_Subcommands verifies the command tree.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	tests := []struct {
		args []string
		use  string
	}{
		{[]string{"create"}, "create"},
		{[]string{"migrate"}, "migrate"},
		{[]string{"ingest"}, "ingest KIND FILE..."},
		{[]string{"stubs"}, "stubs"},
		{[]string{"classify", "assign"}, "assign"},
		{[]string{"classify", "remove"}, "remove ASSIGNMENT_ID..."},
		{[]string{"classify", "category"}, "category"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.use, sub.Use)
		})
	}
}

// TestGetRootCmd_Hooks verifies bootstrap and run functions
// and error silencing.
func TestGetRootCmd_Hooks(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE,
		"RunE should be set to handle version flag")
	assert.True(t, cmd.SilenceErrors, "Errors should be silenced")
	assert.True(t, cmd.SilenceUsage, "Usage should be silenced on errors")
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}
