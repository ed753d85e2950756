package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addScenario = `name: add_one
description: Adding a student assigns id 1
setup:
  - action: add
    args: {name: Ann, age: 20, email: a@x.io, course: ""}
flow:
  - invoke: find
    args: {id: 1}
    expect:
      case: ok
      result: {course: Not Specified}
assertions:
  - type: final_state
    table: store
    expect: {next_id: 2}
`

const addGolden = `scenario: add_one
[1] add age=20 course="" email="a@x.io" name="Ann"
[2] -> ok course="Not Specified" id=1
[3] find id=1
[4] -> ok age=20 course="Not Specified" email="a@x.io" id=1 name="Ann"
`

const failingScenario = `name: wrong_id
description: Expects an id the store never assigns
flow:
  - invoke: add
    args: {name: Bob, age: 21, email: b@x.io, course: CS}
    expect:
      case: ok
      result: {id: 7}
assertions:
  - type: trace_count
    action: add
    count: 1
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "scenarios")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestTestCommand_Pass(t *testing.T) {
	env := newEnv(t)
	dir := scenarioDir(t, map[string]string{
		"add_one.yaml":          addScenario,
		"golden/add_one.golden": addGolden,
	})

	res := env.run(t, "", "test", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "✓ add_one")
	assert.Contains(t, res.stdout, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	env := newEnv(t)
	dir := scenarioDir(t, map[string]string{
		"add_one.yaml":          addScenario,
		"golden/add_one.golden": "scenario: add_one\n",
	})

	res := env.run(t, "", "test", dir)
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stdout, "✗ add_one")
	assert.Contains(t, res.stdout, "trace does not match golden file")
}

func TestTestCommand_UpdateWritesGolden(t *testing.T) {
	env := newEnv(t)
	dir := scenarioDir(t, map[string]string{"add_one.yaml": addScenario})
	goldenDir := filepath.Join(t.TempDir(), "goldens")

	res := env.run(t, "", "test", dir, "--update", "--golden-dir", goldenDir)
	require.NoError(t, res.err)

	data, err := os.ReadFile(filepath.Join(goldenDir, "add_one.golden"))
	require.NoError(t, err)
	assert.Equal(t, addGolden, string(data))

	res = env.run(t, "", "test", dir, "--golden-dir", goldenDir)
	require.NoError(t, res.err)
}

func TestTestCommand_FailureJSON(t *testing.T) {
	env := newEnv(t)
	dir := scenarioDir(t, map[string]string{
		"add_one.yaml":          addScenario,
		"golden/add_one.golden": addGolden,
		"wrong_id.yaml":         failingScenario,
	})

	res := env.run(t, "", "--format", "json", "test", dir)
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 2)
	assert.Equal(t, "add_one", resp.Data.Scenarios[0].Name)
	assert.False(t, resp.Data.Scenarios[1].Pass)
	assert.Contains(t, resp.Data.Scenarios[1].Errors[0], `field "id" = 1, want 7`)
}

func TestTestCommand_Filter(t *testing.T) {
	env := newEnv(t)
	dir := scenarioDir(t, map[string]string{
		"add_one.yaml":  addScenario,
		"wrong_id.yaml": failingScenario,
	})

	res := env.run(t, "", "test", dir, "--filter", "add*")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, res.stdout, "wrong_id")
}

func TestTestCommand_InvalidScenario(t *testing.T) {
	env := newEnv(t)
	dir := scenarioDir(t, map[string]string{"broken.yaml": "name: broken\n"})

	res := env.run(t, "", "test", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.stdout, "✗ broken")
	assert.Contains(t, res.stdout, "failed to load scenario")
}

func TestTestCommand_NoScenarios(t *testing.T) {
	env := newEnv(t)
	res := env.run(t, "", "test", scenarioDir(t, nil))
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No scenarios found.")
}

func TestTestCommand_MissingDir(t *testing.T) {
	env := newEnv(t)
	res := env.run(t, "", "test", filepath.Join(env.dir, "nope"))
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.stdout, "scenarios directory not found")
}
