package azident

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xjbushell/lets-encrypt-azure/domain/credentials"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeBroker struct {
	calls    int
	lifetime time.Duration
	clock    *fakeClock
	err      error
}

func (b *fakeBroker) Acquire(ctx context.Context, resource, tenant string) (*credentials.Credential, error) {
	if b.err != nil {
		return nil, b.err
	}

	b.calls++

	return &credentials.Credential{
		AccessToken: "token-" + resource,
		ExpiresAt:   b.clock.now.Add(b.lifetime),
	}, nil
}

func TestInitialTokenIsAcquiredEagerly(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	broker := &fakeBroker{lifetime: time.Hour, clock: clock}

	_, err := NewRenewingCredential(context.Background(), broker, clock, "https://storage.azure.com/.default", "tenant1")

	require.NoError(t, err)
	assert.Equal(t, 1, broker.calls)
}

func TestUnexpiredTokenIsReused(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	broker := &fakeBroker{lifetime: time.Hour, clock: clock}

	cred, err := NewRenewingCredential(context.Background(), broker, clock, "res", "tenant1")
	require.NoError(t, err)

	clock.now = clock.now.Add(30 * time.Minute)

	token, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, "token-res", token.Token)
	assert.Equal(t, 1, broker.calls, "a token before its renewal point must be reused")
}

func TestTokenIsRenewedAfterRenewalPoint(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	broker := &fakeBroker{lifetime: time.Hour, clock: clock}

	cred, err := NewRenewingCredential(context.Background(), broker, clock, "res", "tenant1")
	require.NoError(t, err)

	// one hour lifetime minus the five minute margin
	clock.now = clock.now.Add(55 * time.Minute)

	_, err = cred.GetToken(context.Background(), policy.TokenRequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, broker.calls)
}

func TestTokenNearExpiryIsImmediatelyRenewable(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	broker := &fakeBroker{lifetime: 2 * time.Minute, clock: clock}

	cred, err := NewRenewingCredential(context.Background(), broker, clock, "res", "tenant1")
	require.NoError(t, err)

	// renewAfter clamps to zero, so the very next request renews
	_, err = cred.GetToken(context.Background(), policy.TokenRequestOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, broker.calls)
}

func TestBrokerFailureSurfacesUnchanged(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)}
	brokerErr := errors.New("identity provider unreachable")
	broker := &fakeBroker{err: brokerErr, clock: clock}

	_, err := NewRenewingCredential(context.Background(), broker, clock, "res", "tenant1")

	require.ErrorIs(t, err, brokerErr)
}
