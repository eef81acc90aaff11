package credentials

import "time"

// RenewalMargin is subtracted from a token's remaining lifetime so it is
// refreshed before it actually expires.
const RenewalMargin = 5 * time.Minute

// Credential holds a bearer token obtained for a managed identity.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// RenewAfter returns the duration, relative to now, after which the
// credential must be renewed. Tokens within the renewal margin of their
// expiry are immediately renewable: the result is never negative.
func (c *Credential) RenewAfter(now time.Time) time.Duration {
	d := c.ExpiresAt.Sub(now) - RenewalMargin
	if d < 0 {
		return 0
	}

	return d
}
