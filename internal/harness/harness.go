package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/roster/internal/codec"
	"github.com/roach88/roster/internal/persist"
	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/store"
	"github.com/roach88/roster/internal/testutil"
)

// Harness executes one scenario against its own store and storage.
type Harness struct {
	gateway persist.Gateway
	store   *store.Store
	seq     *testutil.Sequence
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each run gets a fresh store and a private temporary directory for its
// data file or database, removed afterwards. An error is returned only when
// the scenario cannot be executed at all (bad args, failing setup); unmet
// expectations are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "roster-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario dir: %w", err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()

	gw, err := openGateway(ctx, scenario, dir)
	if err != nil {
		return nil, err
	}
	defer gw.Close()

	h := &Harness{
		gateway: gw,
		store:   store.New(),
		seq:     testutil.NewSequence(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	result := NewResult()
	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	h.captureState(result)
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, h.store) {
		result.AddError(msg)
	}

	return result, nil
}

// openGateway prepares the scenario's storage and seeds it with Data.
// The text backend receives Data verbatim; the sqlite backend receives the
// records Data encodes, which must all be valid.
func openGateway(ctx context.Context, scenario *Scenario, dir string) (persist.Gateway, error) {
	if scenario.Backend != "sqlite" {
		path := filepath.Join(dir, "students.txt")
		if len(scenario.Data) > 0 {
			if err := testutil.WriteLines(path, scenario.Data); err != nil {
				return nil, fmt.Errorf("failed to seed data file: %w", err)
			}
		}
		return persist.NewTextFile(path), nil
	}

	gw, err := persist.OpenSQLite(filepath.Join(dir, "students.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if len(scenario.Data) == 0 {
		return gw, nil
	}

	records := make([]record.Record, 0, len(scenario.Data))
	for i, line := range scenario.Data {
		r, err := codec.Decode(line)
		if err != nil {
			gw.Close()
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		records = append(records, r)
	}
	if err := gw.Save(ctx, records); err != nil {
		gw.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return gw, nil
}

// executeSetup runs all setup steps. Each must complete with ok.
func (h *Harness) executeSetup(ctx context.Context, setup []ActionStep, result *Result) error {
	for i, step := range setup {
		outcome, res, err := h.invoke(ctx, step.Action, step.Args, result)
		if err != nil {
			return fmt.Errorf("setup step %d: %w", i, err)
		}
		if outcome != CaseOK {
			return fmt.Errorf("setup step %d: %s completed with %s %v", i, step.Action, outcome, res)
		}
	}
	return nil
}

// executeFlow runs all flow steps and checks their expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		outcome, res, err := h.invoke(ctx, step.Invoke, step.Args, result)
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}
		if step.Expect == nil {
			continue
		}

		if outcome != step.Expect.Case {
			result.AddError(fmt.Sprintf("flow step %d (%s): expected case %q, got %q %v",
				i, step.Invoke, step.Expect.Case, outcome, res))
			continue
		}
		for _, mismatch := range subsetMismatches(step.Expect.Result, res) {
			result.AddError(fmt.Sprintf("flow step %d (%s): %s", i, step.Invoke, mismatch))
		}
	}
	return nil
}

// invoke traces and executes one action.
func (h *Harness) invoke(ctx context.Context, action string, args map[string]any, result *Result) (string, map[string]any, error) {
	fn, ok := actions[action]
	if !ok {
		return "", nil, fmt.Errorf("unknown action %q", action)
	}
	if args == nil {
		args = map[string]any{}
	}

	result.AddInvocationTrace(action, args, h.seq.Next())
	outcome, res, err := fn(h, ctx, args)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", action, err)
	}
	result.AddCompletionTrace(outcome, res, h.seq.Next())

	h.logger.Debug("action completed", "action", action, "case", outcome, "seq", h.seq.Current())
	return outcome, res, nil
}

func (h *Harness) captureState(result *Result) {
	records := h.store.All()
	result.State[TableStudents] = records
	result.State[TableStore] = storeState(h.store)
}

func storeState(st *store.Store) map[string]any {
	return map[string]any{
		"ids":     record.IDs(st.All()),
		"next_id": st.NextID(),
		"len":     st.Len(),
	}
}
