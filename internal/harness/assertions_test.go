package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/store"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Type: "invocation", Action: "add", Args: map[string]any{"name": "Ann", "age": 20}, Seq: 1},
		{Type: "completion", OutputCase: CaseOK, Result: map[string]any{"id": 1}, Seq: 2},
		{Type: "invocation", Action: "sort", Args: map[string]any{"key": "name"}, Seq: 3},
		{Type: "completion", OutputCase: CaseOK, Result: map[string]any{"ids": []int{1}}, Seq: 4},
		{Type: "invocation", Action: "add", Args: map[string]any{"name": "Bob", "age": 21}, Seq: 5},
		{Type: "completion", OutputCase: CaseOK, Result: map[string]any{"id": 2}, Seq: 6},
	}
}

func TestAssertTraceContains_Found(t *testing.T) {
	err := assertTraceContains(sampleTrace(), Assertion{
		Type:   AssertTraceContains,
		Action: "add",
		Args:   map[string]any{"name": "Bob"},
	})
	assert.NoError(t, err)
}

func TestAssertTraceContains_NotFound(t *testing.T) {
	err := assertTraceContains(sampleTrace(), Assertion{
		Type:   AssertTraceContains,
		Action: "add",
		Args:   map[string]any{"name": "Cara"},
	})
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), `[1] add age=20 name="Ann"`)
}

func TestAssertTraceOrder(t *testing.T) {
	assert.NoError(t, assertTraceOrder(sampleTrace(), Assertion{Actions: []string{"add", "sort"}}))

	err := assertTraceOrder(sampleTrace(), Assertion{Actions: []string{"sort", "add"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort (pos 3) should be before add (pos 1)")

	err = assertTraceOrder(sampleTrace(), Assertion{Actions: []string{"add", "delete"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing action: delete")
}

func TestAssertTraceCount(t *testing.T) {
	assert.NoError(t, assertTraceCount(sampleTrace(), Assertion{Action: "add", Count: 2}))
	assert.NoError(t, assertTraceCount(sampleTrace(), Assertion{Action: "delete", Count: 0}))

	err := assertTraceCount(sampleTrace(), Assertion{Action: "sort", Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 occurrences")
}

func finalStateStore() *store.Store {
	st := store.New()
	st.Add(record.Draft{Name: "Ann", Age: 20, Email: "a@x.io"})
	st.Add(record.Draft{Name: "Bob", Age: 21, Email: "b@x.io", Course: "Math"})
	return st
}

func TestAssertFinalState_Store(t *testing.T) {
	st := finalStateStore()

	err := assertFinalState(st, Assertion{
		Table:  TableStore,
		Expect: map[string]any{"ids": []any{1, 2}, "next_id": 3},
	})
	assert.NoError(t, err)

	err = assertFinalState(st, Assertion{
		Table:  TableStore,
		Expect: map[string]any{"len": 5},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "len" = 2, want 5`)
}

func TestAssertFinalState_Students(t *testing.T) {
	st := finalStateStore()

	err := assertFinalState(st, Assertion{
		Table:  TableStudents,
		Where:  map[string]any{"id": 1},
		Expect: map[string]any{"name": "Ann", "course": record.CourseNotSpecified},
	})
	assert.NoError(t, err)

	err = assertFinalState(st, Assertion{
		Table:  TableStudents,
		Where:  map[string]any{"id": 7},
		Expect: map[string]any{"name": "Ann"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student with id 7")

	err = assertFinalState(st, Assertion{
		Table:  TableStudents,
		Where:  map[string]any{"id": 2},
		Expect: map[string]any{"grade": "A"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "grade" missing`)
}

func TestSubsetMismatches(t *testing.T) {
	got := map[string]any{"ids": []int{1, 3}, "name": "Ann", "age": 20}

	assert.Empty(t, subsetMismatches(nil, got))
	assert.Empty(t, subsetMismatches(map[string]any{"ids": []any{1, 3}, "age": 20}, got))
	assert.Equal(t,
		[]string{`field "age" = 20, want "20"`, `field "name" = "Ann", want "Bob"`},
		subsetMismatches(map[string]any{"name": "Bob", "age": "20"}, got))
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Trace = sampleTrace()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertTraceCount, Action: "add", Count: 2},
		{Type: AssertTraceCount, Action: "add", Count: 3},
		{Type: AssertFinalState, Table: TableStore, Expect: map[string]any{"len": 2}},
		{Type: "eventually"},
	}, finalStateStore())

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "3 occurrences of add")
	assert.Contains(t, errs[1], `unknown assertion type "eventually"`)

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertFinalState, Table: TableStore, Expect: map[string]any{"len": 0}},
	}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires a store")
}
