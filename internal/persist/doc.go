// Package persist moves the whole record collection to and from durable
// storage.
//
// Two backends implement Gateway:
//   - TextFile: the flat comma-separated file, one record per line (see
//     package codec). This is the reference format.
//   - SQLite: a single table with an explicit position column, for users who
//     want a database file instead.
//
// # Save semantics
//
// Save is a whole-collection rewrite. TextFile truncates the target before
// writing, so a failure part-way through leaves a truncated file and the prior
// content is gone. Callers must treat a failed save as data loss for that run
// and keep their in-memory state.
//
// # Load semantics
//
// A missing file is an empty collection, not an error. Lines that fail to
// decode are skipped and reported in LoadResult.Corrupt; they never abort the
// load.
package persist
