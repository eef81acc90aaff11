package interfaces

import (
	"time"
)

// Time provides the current time to the renewal-threshold check and the
// token renewal scheduler.
type Time interface {
	// Now returns the current time in UTC.
	Now() time.Time
}
