package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/testutil"
)

func TestListTable(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "list")
	require.NoError(t, res.err)
	for _, want := range []string{"ID", "Name", "Course", "Alice Smith", "bob jones", "cara@example.com", "Physics"} {
		assert.Contains(t, res.stdout, want)
	}
}

func TestListCompact(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "list", "--compact")
	require.NoError(t, res.err)
	assert.Equal(t,
		"#1 Alice Smith (20) alice@example.com, Computer Science\n"+
			"#2 bob jones (22) bob@example.com, Mathematics\n"+
			"#3 Cara Diaz (19) cara@example.com, Physics\n",
		res.stdout)
}

func TestListJSON(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "--format", "json", "list")
	require.NoError(t, res.err)

	var resp struct {
		Status string          `json:"status"`
		Data   []record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, []int{1, 2, 3}, record.IDs(resp.Data))
}

func TestFindLinear(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "find", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "bob jones")
	assert.NotContains(t, res.stdout, "comparison")
}

func TestFindBinaryReportsComparisons(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "--format", "json", "find", "3", "--binary")
	require.NoError(t, res.err)

	var resp struct {
		Data FindResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "binary", resp.Data.Method)
	assert.Equal(t, 3, resp.Data.Student.ID)
	// [1,2,3]: probe 2, then 3.
	assert.Equal(t, 2, resp.Data.Comparisons)
}

func TestFindBinaryFallsBackWhenUnsorted(t *testing.T) {
	env := newEnv(t,
		"5,E,20,,X",
		"3,C,20,,X",
		"1,A,20,,X",
	)

	res := env.run(t, "", "find", "1", "--binary")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "not sorted by id; using linear search")
	assert.NotContains(t, res.stdout, "binary search")
	assert.Contains(t, res.stdout, "A")
}

func TestFindNotFound(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	for _, args := range [][]string{{"find", "9"}, {"find", "9", "--binary"}} {
		res := env.run(t, "", args...)
		require.Error(t, res.err)
		assert.Equal(t, ExitFailure, GetExitCode(res.err))
		assert.Contains(t, res.stdout, "student 9 not found")
	}
}

func TestSearchByNameIgnoresCase(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "search", "--name", "BOB", "--compact")
	require.NoError(t, res.err)
	assert.Equal(t, "#2 bob jones (22) bob@example.com, Mathematics\n", res.stdout)
}

func TestSearchByCourse(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "search", "--course", "sci", "--compact")
	require.NoError(t, res.err)
	assert.Equal(t, "#1 Alice Smith (20) alice@example.com, Computer Science\n", res.stdout)

	res = env.run(t, "", "--format", "json", "search", "--course", "history")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, res.stdout)
}

func TestSearchNeedsOneField(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "search")
	require.Error(t, res.err)

	res = env.run(t, "", "search", "--name", "a", "--course", "b")
	require.Error(t, res.err)
}

func TestExportXLSX(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)
	path := filepath.Join(env.dir, "out.xlsx")

	res := env.run(t, "", "export", "--xlsx", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Exported 3 student(s)")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"2", "bob jones", "22", "bob@example.com", "Mathematics"}, rows[2])
}

func TestExportRequiresPath(t *testing.T) {
	env := newEnv(t, testutil.SampleLines...)

	res := env.run(t, "", "export")
	require.Error(t, res.err)
}
