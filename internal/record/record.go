package record

import "strings"

// CourseNotSpecified is stored in place of a blank course on creation.
const CourseNotSpecified = "Not Specified"

// Record is one student's data tuple.
//
// ID is assigned by the store and never changes afterwards. The remaining
// fields are free-form; range and character checks belong to the input layer
// (see internal/schema), not to the store.
type Record struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Email  string `json:"email"`
	Course string `json:"course"`
}

// Draft holds the caller-supplied fields of a record that has no ID yet.
type Draft struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Email  string `json:"email"`
	Course string `json:"course"`
}

// WithID materializes the draft as a Record carrying id.
// A blank course is replaced with CourseNotSpecified.
func (d Draft) WithID(id int) Record {
	course := d.Course
	if strings.TrimSpace(course) == "" {
		course = CourseNotSpecified
	}
	return Record{
		ID:     id,
		Name:   d.Name,
		Age:    d.Age,
		Email:  d.Email,
		Course: course,
	}
}

// IDs returns the identifiers of records in order.
func IDs(records []Record) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
