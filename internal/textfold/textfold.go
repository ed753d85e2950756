// Package textfold provides case-insensitive string matching and ordering.
//
// All functions are pure. A fresh cases.Caser is built per call because
// Casers carry internal state and must not be shared.
package textfold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the NFC-normalized, case-folded form of s.
// Two strings that differ only in case (or in composition) fold to the same value.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Contains reports whether fragment occurs in s, ignoring case.
// An empty fragment matches every string.
func Contains(s, fragment string) bool {
	return strings.Contains(Fold(s), Fold(fragment))
}

// Compare orders a and b by their folded forms.
// Returns -1, 0 or +1 like strings.Compare.
func Compare(a, b string) int {
	return strings.Compare(Fold(a), Fold(b))
}
