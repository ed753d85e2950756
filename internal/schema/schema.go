// Package schema validates user-supplied record fields against an embedded
// CUE schema before they reach the store.
//
// The store itself accepts any values. These rules exist for the interactive
// layer: a non-empty name, an age inside the configured range, and no field
// text that would break the comma-separated data file.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/roster/internal/record"
)

//go:embed student.cue
var studentSchema string

// Field names as they appear in the schema.
const (
	FieldName   = "name"
	FieldAge    = "age"
	FieldEmail  = "email"
	FieldCourse = "course"
)

// Default age bounds.
const (
	DefaultMinAge = 15
	DefaultMaxAge = 80
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"` // raw CUE diagnostic
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every rejected field of a draft or patch.
type ValidationError struct {
	Fields []*FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "invalid record: " + strings.Join(msgs, "; ")
}

// Validator checks record fields. It is not safe for concurrent use.
type Validator struct {
	student cue.Value
	ctx     *cue.Context
	minAge  int
	maxAge  int
}

// New compiles the schema with the given inclusive age bounds.
func New(minAge, maxAge int) (*Validator, error) {
	if minAge > maxAge {
		return nil, fmt.Errorf("invalid age bounds: min %d > max %d", minAge, maxAge)
	}

	ctx := cuecontext.New()
	root := ctx.CompileString(studentSchema, cue.Filename("student.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compiling student schema: %w", err)
	}

	root = root.FillPath(cue.ParsePath("limits"), map[string]int{
		"minAge": minAge,
		"maxAge": maxAge,
	})
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("applying age bounds: %w", err)
	}

	student := root.LookupPath(cue.ParsePath("student"))
	if !student.Exists() {
		return nil, fmt.Errorf("student schema missing 'student' definition")
	}

	return &Validator{
		student: student,
		ctx:     ctx,
		minAge:  minAge,
		maxAge:  maxAge,
	}, nil
}

// AgeRange returns the inclusive age bounds.
func (v *Validator) AgeRange() (int, int) {
	return v.minAge, v.maxAge
}

// Field validates a single value. Returns *FieldError on rejection.
func (v *Validator) Field(field string, value any) error {
	rule := v.student.LookupPath(cue.ParsePath(field))
	if !rule.Exists() {
		return fmt.Errorf("unknown field %q", field)
	}

	if err := rule.Unify(v.ctx.Encode(value)).Validate(cue.Concrete(true)); err != nil {
		return &FieldError{
			Field:   field,
			Message: v.hint(field),
			Detail:  err.Error(),
		}
	}
	return nil
}

// Draft validates every field of d. Returns *ValidationError listing all
// rejected fields, or nil.
func (v *Validator) Draft(d record.Draft) error {
	return v.collect(
		fieldValue{FieldName, d.Name},
		fieldValue{FieldAge, d.Age},
		fieldValue{FieldEmail, d.Email},
		fieldValue{FieldCourse, d.Course},
	)
}

// Patch validates the present fields of p. Absent fields are not checked.
func (v *Validator) Patch(p record.Patch) error {
	var fields []fieldValue
	if s, ok := p.Name.Get(); ok {
		fields = append(fields, fieldValue{FieldName, s})
	}
	if n, ok := p.Age.Get(); ok {
		fields = append(fields, fieldValue{FieldAge, n})
	}
	if s, ok := p.Email.Get(); ok {
		fields = append(fields, fieldValue{FieldEmail, s})
	}
	if s, ok := p.Course.Get(); ok {
		fields = append(fields, fieldValue{FieldCourse, s})
	}
	return v.collect(fields...)
}

type fieldValue struct {
	name  string
	value any
}

func (v *Validator) collect(fields ...fieldValue) error {
	var verr ValidationError
	for _, f := range fields {
		if err := v.Field(f.name, f.value); err != nil {
			fe, ok := err.(*FieldError)
			if !ok {
				return err
			}
			verr.Fields = append(verr.Fields, fe)
		}
	}
	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}

func (v *Validator) hint(field string) string {
	switch field {
	case FieldName:
		return "must not be empty and must not contain commas or line breaks"
	case FieldAge:
		return fmt.Sprintf("must be between %d and %d", v.minAge, v.maxAge)
	default:
		return "must not contain commas or line breaks"
	}
}
