// Package keyvault adapts Azure Key Vault to the secret store and
// certificate store interfaces.
package keyvault

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
)

func vaultURL(vaultName string) string {
	return fmt.Sprintf("https://%s.vault.azure.net/", vaultName)
}

// isNotFound reports whether the service answered with a 404.
func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// SecretStore fetches secrets from Key Vault. Clients are created per vault
// on first use and reused for the lifetime of the store.
type SecretStore struct {
	cred azcore.TokenCredential

	mu      sync.Mutex
	clients map[string]*azsecrets.Client
}

// NewSecretStore creates a secret store using the given credential for every
// vault it is asked about.
func NewSecretStore(cred azcore.TokenCredential) *SecretStore {
	return &SecretStore{
		cred:    cred,
		clients: make(map[string]*azsecrets.Client),
	}
}

func (s *SecretStore) client(vaultName string) (*azsecrets.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[vaultName]; ok {
		return client, nil
	}

	client, err := azsecrets.NewClient(vaultURL(vaultName), s.cred, nil)
	if err != nil {
		return nil, err
	}

	s.clients[vaultName] = client

	return client, nil
}

// GetSecret retrieves the latest version of the named secret. A missing
// secret is reported as an errs.NotFoundError; every other failure surfaces
// unchanged.
func (s *SecretStore) GetSecret(ctx context.Context, vaultName, secretName string) (string, error) {
	client, err := s.client(vaultName)
	if err != nil {
		return "", err
	}

	resp, err := client.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		if isNotFound(err) {
			return "", errs.NewNotFound("secret", secretName, err)
		}

		return "", err
	}

	if resp.Value == nil {
		return "", nil
	}

	return *resp.Value, nil
}
