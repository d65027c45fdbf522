package clock

import "time"

// Clock provides time to the application.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current local wall-clock time. Submission
// timestamps are client local time, so no UTC conversion happens here.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
