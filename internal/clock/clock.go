// Package clock provides the wall clock used for timestamps and artifact
// tokens, and the monotonic sequence used to order journal entries.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current wall-clock time.
// Production code uses System; tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// Millis returns t as milliseconds since the Unix epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// Sequence is a monotonic logical clock for ordering emitted lines.
//
// Every journal entry is stamped with a strictly increasing seq number, so
// the order lines were written can be recovered without trusting wall-clock
// timestamps.
//
// Thread-safety: Sequence is safe for concurrent use (atomic operations).
type Sequence struct {
	seq atomic.Int64
}

// NewSequence creates a sequence starting at 0. The first Next returns 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next sequence number and increments the sequence.
func (s *Sequence) Next() int64 {
	return s.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (s *Sequence) Current() int64 {
	return s.seq.Load()
}
