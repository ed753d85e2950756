package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "roster", cmd.Use)
	assert.Contains(t, cmd.Long, "interactive menu")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"shell", "add", "list", "find", "search", "update", "delete", "sort", "export", "config", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "file", "backend", "admin-id", "admin-password"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestDeleteCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	deleteCmd, _, err := cmd.Find([]string{"delete"})
	require.NoError(t, err)

	yesFlag := deleteCmd.Flags().Lookup("yes")
	require.NotNil(t, yesFlag)
	assert.Equal(t, "y", yesFlag.Shorthand)
	assert.Equal(t, "false", yesFlag.DefValue)
}

func TestSortCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	sortCmd, _, err := cmd.Find([]string{"sort"})
	require.NoError(t, err)

	byFlag := sortCmd.Flags().Lookup("by")
	require.NotNil(t, byFlag)
	assert.Equal(t, "id", byFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	env := newEnv(t)

	res := env.run(t, "", "--format", "xml", "list")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid format")
}

func TestInvalidBackend(t *testing.T) {
	env := newEnv(t)

	res := env.run(t, "", "--backend", "csv", "list")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid backend")
}

func TestCorruptLinesWarning(t *testing.T) {
	env := newEnv(t,
		"1,Alice Smith,20,alice@example.com,Computer Science",
		"this line is broken",
		"2,bob jones,22,bob@example.com,Mathematics",
	)

	res := env.run(t, "", "list", "--compact")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Warning: skipped 1 corrupt line(s)")
	assert.NotContains(t, res.stderr, "line 2:")
	assert.Contains(t, res.stdout, "#2 bob jones")

	res = env.run(t, "", "-v", "list", "--compact")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "line 2:")
}

func TestMissingDataFileIsEmpty(t *testing.T) {
	env := newEnv(t)

	res := env.run(t, "", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "No students found.\n", res.stdout)
}
