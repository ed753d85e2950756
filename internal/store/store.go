package store

import (
	"errors"
	"slices"

	"github.com/roach88/roster/internal/record"
)

// ErrNotConfirmed is returned by Delete when the caller did not confirm.
var ErrNotConfirmed = errors.New("delete not confirmed")

// Store is an ordered collection of records with a monotonic id counter.
type Store struct {
	records []record.Record
	nextID  int
}

// New creates an empty store whose first assigned id will be 1.
func New() *Store {
	return &Store{nextID: 1}
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() int {
	return s.nextID
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of the records in their current order.
// Mutating the returned slice does not affect the store.
func (s *Store) All() []record.Record {
	return slices.Clone(s.records)
}

// Add appends a new record built from d, assigning it the next id.
// Always succeeds.
func (s *Store) Add(d record.Draft) record.Record {
	r := d.WithID(s.nextID)
	s.nextID++
	s.records = append(s.records, r)
	return r
}

// Find returns the record with the given id.
// Returns *record.NotFoundError if no record has that id.
func (s *Store) Find(id int) (record.Record, error) {
	i := s.indexOf(id)
	if i < 0 {
		return record.Record{}, &record.NotFoundError{ID: id}
	}
	return s.records[i], nil
}

// Update applies p to the record with the given id in place and returns the
// updated record. The id and position are unchanged.
// Returns *record.NotFoundError if no record has that id.
func (s *Store) Update(id int, p record.Patch) (record.Record, error) {
	i := s.indexOf(id)
	if i < 0 {
		return record.Record{}, &record.NotFoundError{ID: id}
	}
	s.records[i] = p.Apply(s.records[i])
	return s.records[i], nil
}

// Delete removes the record with the given id.
//
// The caller states its confirmation explicitly: when confirmed is false and
// the record exists, nothing is removed and ErrNotConfirmed is returned.
// Returns *record.NotFoundError if no record has that id.
func (s *Store) Delete(id int, confirmed bool) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, &record.NotFoundError{ID: id}
	}
	if !confirmed {
		return false, ErrNotConfirmed
	}
	s.records = slices.Delete(s.records, i, i+1)
	return true, nil
}

// Replace discards the current records and installs records in the given
// order, then advances the id counter past every loaded id.
// Callers must supply records with distinct ids.
func (s *Store) Replace(records []record.Record) {
	s.records = slices.Clone(records)
	s.ReassignNextIDFrom(record.IDs(records))
}

// ReassignNextIDFrom sets the counter to max(ids)+1, or 1 when ids is empty.
// The counter is never lowered, so ids handed out earlier by this store stay
// unique even if they are absent from ids.
func (s *Store) ReassignNextIDFrom(ids []int) {
	next := 1
	if len(ids) > 0 {
		next = slices.Max(ids) + 1
	}
	s.nextID = max(s.nextID, next)
}

// SortStableFunc reorders the records in place using cmp.
// Records that compare equal keep their relative order.
func (s *Store) SortStableFunc(cmp func(a, b record.Record) int) {
	slices.SortStableFunc(s.records, cmp)
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.records, func(r record.Record) bool {
		return r.ID == id
	})
}
