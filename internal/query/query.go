// Package query searches the record collection.
//
// Linear searches work on any ordering and preserve it in their results.
// BinarySearchByID requires the source to be sorted ascending by id; use
// IsSortedByID to check and sort first (package sorting) when it is not.
package query

import (
	"github.com/roach88/roster/internal/record"
	"github.com/roach88/roster/internal/textfold"
)

// Source is anything that exposes the records in their current order.
// *store.Store satisfies it.
type Source interface {
	All() []record.Record
}

// LinearSearchByID returns the first record with the given id.
// Returns *record.NotFoundError when absent.
func LinearSearchByID(src Source, id int) (record.Record, error) {
	for _, r := range src.All() {
		if r.ID == id {
			return r, nil
		}
	}
	return record.Record{}, &record.NotFoundError{ID: id}
}

// SearchByName returns the records whose name contains fragment, ignoring
// case, in source order. The result may be empty.
func SearchByName(src Source, fragment string) []record.Record {
	return filter(src, func(r record.Record) bool {
		return textfold.Contains(r.Name, fragment)
	})
}

// SearchByCourse returns the records whose course contains fragment,
// ignoring case, in source order. The result may be empty.
func SearchByCourse(src Source, fragment string) []record.Record {
	return filter(src, func(r record.Record) bool {
		return textfold.Contains(r.Course, fragment)
	})
}

// IsSortedByID reports whether ids are in non-decreasing order.
func IsSortedByID(src Source) bool {
	records := src.All()
	for i := 1; i < len(records); i++ {
		if records[i].ID < records[i-1].ID {
			return false
		}
	}
	return true
}

// BinarySearchByID bisects src for id and reports how many midpoint
// comparisons it made.
//
// Precondition: src is sorted ascending by id. On an unsorted source the
// result is unspecified.
// Returns *record.NotFoundError when the interval empties without a match;
// the comparison count is valid in both cases.
func BinarySearchByID(src Source, id int) (record.Record, int, error) {
	records := src.All()
	comparisons := 0

	low, high := 0, len(records)-1
	for low <= high {
		mid := low + (high-low)/2
		comparisons++

		switch midID := records[mid].ID; {
		case midID == id:
			return records[mid], comparisons, nil
		case midID < id:
			low = mid + 1
		default:
			high = mid - 1
		}
	}

	return record.Record{}, comparisons, &record.NotFoundError{ID: id}
}

func filter(src Source, keep func(record.Record) bool) []record.Record {
	var out []record.Record
	for _, r := range src.All() {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
