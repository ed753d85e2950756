package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// cliEnv is an isolated working directory with its own data file and no
// user config.
type cliEnv struct {
	dir  string
	data string
}

func newEnv(t *testing.T, lines ...string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(AdminPasswordEnv, "")

	env := &cliEnv{dir: dir, data: filepath.Join(dir, "students.txt")}
	if len(lines) > 0 {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(env.data, []byte(content), 0o644))
	}
	return env
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command against the env data file.
func (e *cliEnv) run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return e.runFrom(t, strings.NewReader(stdin), args...)
}

// runFrom is run with an arbitrary stdin reader.
func (e *cliEnv) runFrom(t *testing.T, stdin io.Reader, args ...string) result {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(stdin)
	cmd.SetArgs(append([]string{"--file", e.data}, args...))

	err := cmd.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func (e *cliEnv) dataFile(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.data)
	require.NoError(t, err)
	return string(data)
}

