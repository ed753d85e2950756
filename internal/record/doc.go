// Package record defines the student record value type and the patch
// structure used for partial updates.
//
// Records are plain values. Copying a Record copies all of its state, so the
// store hands out copies and callers can never mutate stored data behind its
// back.
package record
