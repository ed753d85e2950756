package testutil

// Sequence numbers trace events in a scenario run.
//
// The first call to Next returns 1. A Sequence is not safe for concurrent
// use; each scenario run owns its own.
type Sequence struct {
	n int64
}

// NewSequence creates a sequence starting at 0.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next increments and returns the next number.
func (s *Sequence) Next() int64 {
	s.n++
	return s.n
}

// Current returns the last number handed out, or 0.
func (s *Sequence) Current() int64 {
	return s.n
}

// Reset starts the sequence over so a scenario can be replayed with
// identical numbering.
func (s *Sequence) Reset() {
	s.n = 0
}
