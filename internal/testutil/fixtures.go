// Package testutil holds fixtures shared by package tests and the scenario
// harness.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/store"
)

// SampleLines is a small valid data file, one encoded record per entry.
var SampleLines = []string{
	"1,Alice Smith,20,alice@example.com,Computer Science",
	"2,bob jones,22,bob@example.com,Mathematics",
	"3,Cara Diaz,19,cara@example.com,Physics",
}

// SampleRecords returns the records encoded by SampleLines.
func SampleRecords() []record.Record {
	return []record.Record{
		{ID: 1, Name: "Alice Smith", Age: 20, Email: "alice@example.com", Course: "Computer Science"},
		{ID: 2, Name: "bob jones", Age: 22, Email: "bob@example.com", Course: "Mathematics"},
		{ID: 3, Name: "Cara Diaz", Age: 19, Email: "cara@example.com", Course: "Physics"},
	}
}

// WriteLines writes lines, each newline-terminated, to path.
func WriteLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// DataFile writes lines to students.txt in a fresh temp dir and returns
// its path.
func DataFile(t testing.TB, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.txt")
	if err := WriteLines(path, lines); err != nil {
		t.Fatalf("writing data file: %v", err)
	}
	return path
}

// StoreWith returns a store holding records in order, with its counter
// advanced past their ids.
func StoreWith(records ...record.Record) *store.Store {
	st := store.New()
	st.Replace(records)
	return st
}

// StoreWithIDs returns a store of placeholder records with the given ids,
// in the given order.
func StoreWithIDs(ids ...int) *store.Store {
	records := make([]record.Record, len(ids))
	for i, id := range ids {
		records[i] = record.Record{ID: id, Name: "student", Age: 20, Course: record.CourseNotSpecified}
	}
	return StoreWith(records...)
}
