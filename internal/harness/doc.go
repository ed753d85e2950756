// Package harness runs scripted scenarios against the record store.
//
// A scenario seeds a data file, invokes store, query, sort and persistence
// operations in order, checks each outcome, and finally asserts on the trace
// of operations and on the resulting collection.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	backend: text            # or sqlite; default text
//	data:                    # initial file lines, loaded by the load action
//	  - "1,Alice,20,alice@example.com,CS"
//	setup:
//	  - action: load
//	  - action: add
//	    args: { name: Bob, age: 22 }
//	flow:
//	  - invoke: delete
//	    args: { id: 1, confirmed: true }
//	    expect:
//	      case: ok
//	      result: { deleted: true }
//	assertions:
//	  - type: trace_count
//	    action: delete
//	    count: 1
//	  - type: final_state
//	    table: store
//	    expect: { ids: [2], next_id: 3 }
//
// # Actions
//
//   - load, save: restore from or write to the scenario's storage
//   - add, update, delete, find: store operations
//   - linear_search, binary_search, search_name, search_course, is_sorted: queries
//   - sort: sort by key (id|name|age) and direction (asc|desc)
//   - reassign_next_id: advance the id counter from a list of ids
//
// # Outcome Cases
//
// Every action completes with one of: ok, not_found, not_confirmed, error.
//
// # Assertion Types
//
//   - trace_contains: an action was invoked with matching args
//   - trace_order: actions were invoked in the given order
//   - trace_count: an action was invoked exactly N times
//   - final_state: table "store" (ids, next_id, len) or table "students"
//     (fields of the record selected by where)
//
// Scenarios are deterministic: the trace of a scenario renders to the same
// text on every run, which RunWithGolden compares against a golden file.
package harness
