package time

import "time"

// SystemTime is the wall-clock time source used by the renewal run.
type SystemTime struct{}

// NewSystemTime creates a wall-clock time source.
func NewSystemTime() *SystemTime {
	return &SystemTime{}
}

// Now returns the current system time in UTC.
func (t *SystemTime) Now() time.Time {
	return time.Now().UTC()
}
