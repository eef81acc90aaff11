package interfaces

import (
	"context"

	"github.com/0xjbushell/lets-encrypt-azure/domain/credentials"
)

// TokenBroker acquires a bearer token for the ambient managed identity
// against a resource and tenant. Implementations perform one network call per
// acquisition and surface transport and authentication failures unchanged;
// scheduling renewals is the caller's responsibility.
type TokenBroker interface {
	Acquire(ctx context.Context, resource, tenant string) (*credentials.Credential, error)
}
