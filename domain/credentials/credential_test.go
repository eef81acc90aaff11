package credentials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenewAfter(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  time.Duration
	}{
		{"one hour lifetime", now.Add(time.Hour), 55 * time.Minute},
		{"exactly at the margin", now.Add(5 * time.Minute), 0},
		{"two minutes left clamps to zero", now.Add(2 * time.Minute), 0},
		{"already expired clamps to zero", now.Add(-time.Minute), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := &Credential{AccessToken: "t", ExpiresAt: tt.expiresAt}

			assert.Equal(t, tt.expected, cred.RenewAfter(now))
		})
	}
}
