package azstorage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/infra/azident"
)

// Factory constructs blob containers for the credential paths of the
// fallback chain.
type Factory struct {
	broker interfaces.TokenBroker
	clock  interfaces.Time
	tenant string
}

// NewFactory creates a storage client factory. Managed-identity clients
// acquire their tokens for the given tenant through the broker.
func NewFactory(broker interfaces.TokenBroker, clock interfaces.Time, tenant string) *Factory {
	return &Factory{
		broker: broker,
		clock:  clock,
		tenant: tenant,
	}
}

// FromManagedIdentity constructs a container client that authenticates with
// a renewing managed-identity token. The initial token is acquired before the
// client is returned.
func (f *Factory) FromManagedIdentity(ctx context.Context, account, containerName string) (interfaces.BlobContainer, error) {
	cred, err := azident.NewRenewingCredential(ctx, f.broker, f.clock, StorageResource, f.tenant)
	if err != nil {
		return nil, err
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", account)

	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, err
	}

	return &Container{
		account: account,
		client:  client.ServiceClient().NewContainerClient(containerName),
	}, nil
}

// FromConnectionString constructs a container client directly from an
// explicit connection string.
func (f *Factory) FromConnectionString(connectionString, containerName string) (interfaces.BlobContainer, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}

	return &Container{
		account: accountFromConnectionString(connectionString),
		client:  client.ServiceClient().NewContainerClient(containerName),
	}, nil
}

// accountFromConnectionString extracts the AccountName part, used only to
// name the account in error messages.
func accountFromConnectionString(connectionString string) string {
	for _, part := range strings.Split(connectionString, ";") {
		if name, ok := strings.CutPrefix(part, "AccountName="); ok {
			return name
		}
	}

	return "storage account"
}
