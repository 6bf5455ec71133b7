package services

import "time"

// Clock abstracts "now" so the reminder window and creation timestamps
// can be driven from tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
