package azident

import (
	"context"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/domain/credentials"
)

// RenewingCredential implements azcore.TokenCredential on top of a token
// broker. The storage client calls GetToken on every outgoing request: the
// current token is returned until its renewal point passes, then the broker
// is re-invoked synchronously with the same resource and tenant. Renewal
// appears atomic to concurrent callers.
type RenewingCredential struct {
	broker   interfaces.TokenBroker
	clock    interfaces.Time
	resource string
	tenant   string

	mu      sync.Mutex
	current *credentials.Credential
	renewAt time.Time
}

// NewRenewingCredential creates a renewing credential and eagerly acquires
// the initial token before returning.
func NewRenewingCredential(ctx context.Context, broker interfaces.TokenBroker, clock interfaces.Time, resource, tenant string) (*RenewingCredential, error) {
	c := &RenewingCredential{
		broker:   broker,
		clock:    clock,
		resource: resource,
		tenant:   tenant,
	}

	if err := c.renew(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// renew re-invokes the broker and computes the next renewal point. Callers
// must hold mu, except during construction.
func (c *RenewingCredential) renew(ctx context.Context) error {
	cred, err := c.broker.Acquire(ctx, c.resource, c.tenant)
	if err != nil {
		return err
	}

	now := c.clock.Now()

	c.current = cred
	c.renewAt = now.Add(cred.RenewAfter(now))

	return nil
}

// GetToken implements azcore.TokenCredential.
func (c *RenewingCredential) GetToken(ctx context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.clock.Now().Before(c.renewAt) {
		if err := c.renew(ctx); err != nil {
			return azcore.AccessToken{}, err
		}
	}

	return azcore.AccessToken{
		Token:     c.current.AccessToken,
		ExpiresOn: c.current.ExpiresAt,
	}, nil
}
