// Package azident acquires and renews managed-identity tokens from Azure
// Active Directory.
package azident

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/0xjbushell/lets-encrypt-azure/domain/credentials"
)

// NewManagedIdentity creates a credential for the ambient system-assigned
// managed identity.
func NewManagedIdentity() (azcore.TokenCredential, error) {
	return azidentity.NewManagedIdentityCredential(nil)
}

// Broker obtains bearer tokens from the identity provider. It performs one
// token request per Acquire call and surfaces transport and authentication
// failures unchanged; renewal scheduling is the caller's concern. A broker
// may be shared across renewal runs.
type Broker struct {
	cred azcore.TokenCredential
}

// NewBroker creates a token broker on top of the given credential.
func NewBroker(cred azcore.TokenCredential) *Broker {
	return &Broker{
		cred: cred,
	}
}

// Acquire requests a token for the resource scope in the given tenant.
func (b *Broker) Acquire(ctx context.Context, resource, tenant string) (*credentials.Credential, error) {
	token, err := b.cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes:   []string{resource},
		TenantID: tenant,
	})
	if err != nil {
		return nil, err
	}

	return &credentials.Credential{
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresOn,
	}, nil
}
