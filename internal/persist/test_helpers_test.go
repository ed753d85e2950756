package persist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roach88/roster/internal/record"
)

// writeDataFile writes lines joined by "\n" into a fresh temp file.
func writeDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// readLines returns the file content split on newlines, without the final empty entry.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func sampleRecords() []record.Record {
	return []record.Record{
		{ID: 3, Name: "Cara Diaz", Age: 19, Email: "cara@x.com", Course: "Math"},
		{ID: 1, Name: "Alice", Age: 20, Email: "a@x.com", Course: "CS"},
		{ID: 2, Name: "bob", Age: 22, Email: "b@x.com", Course: record.CourseNotSpecified},
	}
}
