package harness

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RenderTrace renders a trace as deterministic text, one event per line:
//
//	[1] add age=20 course="" email="a@b.c" name="Ann"
//	[2] -> ok course="Not Specified" id=1
//
// Keys are sorted and strings are quoted, so the output is stable across runs.
func RenderTrace(name string, trace []TraceEvent) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	for _, event := range trace {
		switch event.Type {
		case "invocation":
			fmt.Fprintf(&buf, "[%d] %s", event.Seq, event.Action)
		default:
			fmt.Fprintf(&buf, "[%d] -> %s", event.Seq, event.OutputCase)
		}
		fields := event.Args
		if event.Type != "invocation" {
			fields = event.Result
		}
		if len(fields) > 0 {
			buf.WriteString(" ")
			buf.WriteString(formatFields(fields))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

func formatFields(fields map[string]any) string {
	parts := make([]string, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, key+"="+formatValue(fields[key]))
	}
	return strings.Join(parts, " ")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}

// RunWithGolden executes a scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, RenderTrace(scenarioName, result.Trace))
}
