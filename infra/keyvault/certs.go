package keyvault

import (
	"context"
	"encoding/hex"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azcertificates"
	"github.com/cenkalti/backoff/v4"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/domain/certs"
)

// importMaxRetries bounds the retries around certificate import. Key Vault
// occasionally throttles writes right after issuance.
const importMaxRetries = 3

// CertificateStore stores issued certificates in one Key Vault.
type CertificateStore struct {
	log       interfaces.Logger
	client    *azcertificates.Client
	vaultName string
}

// NewCertificateStore creates a certificate store for the named vault.
func NewCertificateStore(log interfaces.Logger, cred azcore.TokenCredential, vaultName string) (*CertificateStore, error) {
	client, err := azcertificates.NewClient(vaultURL(vaultName), cred, nil)
	if err != nil {
		return nil, err
	}

	return &CertificateStore{
		log:       log,
		client:    client,
		vaultName: vaultName,
	}, nil
}

// GetCertificate retrieves metadata for the latest version of the named
// certificate. Returns a nil certificate if none is found.
func (s *CertificateStore) GetCertificate(ctx context.Context, name string) (*certs.StoredCertificate, error) {
	resp, err := s.client.GetCertificate(ctx, name, "", nil)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	stored := &certs.StoredCertificate{Name: name}

	if resp.Attributes != nil && resp.Attributes.Expires != nil {
		stored.NotAfter = *resp.Attributes.Expires
	}

	if len(resp.X509Thumbprint) > 0 {
		stored.Thumbprint = hex.EncodeToString(resp.X509Thumbprint)
	}

	return stored, nil
}

// ImportCertificate stores a certificate under the given name, retrying
// transient import failures with exponential backoff.
func (s *CertificateStore) ImportCertificate(ctx context.Context, name string, crt *certs.Certificate) error {
	params := azcertificates.ImportCertificateParameters{
		Base64EncodedCertificate: to.Ptr(string(crt.Bundle())),
	}

	op := func() error {
		_, err := s.client.ImportCertificate(ctx, name, params, nil)
		if err != nil {
			s.log.
				WithField("vault", s.vaultName).
				WithField("certificate", name).
				WithError(err).
				Warn("importing certificate failed, retrying")
		}

		return err
	}

	return backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), importMaxRetries), ctx))
}
