// Package codec converts records to and from lines of the persisted text format:
//
//	<id>,<name>,<age>,<email>,<course>
//
// Fields are joined with a bare comma. Nothing is quoted or escaped, so a
// comma inside name, email or course produces a line that no longer decodes
// to the same record. The input layer rejects such values before they reach
// the store.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/roster/internal/record"
)

// Delimiter separates fields on a line.
const Delimiter = ","

// FieldCount is the number of fields in a well-formed line.
const FieldCount = 5

// CorruptError reports a line that does not decode into a record.
type CorruptError struct {
	Line   int    // 1-based line number in the source, 0 if unknown
	Text   string // the offending line
	Reason string
}

func (e *CorruptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: corrupt record: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("corrupt record: %s", e.Reason)
}

// Encode renders r as a single line without a trailing newline.
func Encode(r record.Record) string {
	return strings.Join([]string{
		strconv.Itoa(r.ID),
		r.Name,
		strconv.Itoa(r.Age),
		r.Email,
		r.Course,
	}, Delimiter)
}

// Decode parses one line. It fails with *CorruptError when the line does not
// split into exactly FieldCount fields or when id or age is not an integer.
// Surrounding whitespace is tolerated on the numeric fields only.
func Decode(line string) (record.Record, error) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != FieldCount {
		return record.Record{}, &CorruptError{
			Text:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)),
		}
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return record.Record{}, &CorruptError{Text: line, Reason: fmt.Sprintf("invalid id %q", fields[0])}
	}
	age, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return record.Record{}, &CorruptError{Text: line, Reason: fmt.Sprintf("invalid age %q", fields[2])}
	}

	return record.Record{
		ID:     id,
		Name:   fields[1],
		Age:    age,
		Email:  fields[3],
		Course: fields[4],
	}, nil
}

// Safe reports whether s can be stored in a field without breaking the line
// structure.
func Safe(s string) bool {
	return !strings.ContainsAny(s, Delimiter+"\r\n")
}
