// Package store holds the authoritative in-memory collection of student
// records and its identifier-assignment policy.
//
// # Invariants
//
//   - Record ids are pairwise distinct.
//   - NextID is strictly greater than every id this Store has ever held.
//     The counter only moves forward; ids freed by Delete are never reused.
//
// # Ordering
//
// Records keep insertion order until reordered through SortStableFunc.
// After a bulk load (Replace) the order is whatever the loader supplied.
//
// A Store has exactly one owner and is not safe for concurrent use.
package store
