package interfaces

import (
	"context"

	"github.com/0xjbushell/lets-encrypt-azure/domain/certs"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

// CertificateStore provides durable storage of issued certificates, keyed by
// name.
type CertificateStore interface {
	// GetCertificate retrieves metadata for the named certificate.
	// Returns a nil certificate if none is found.
	GetCertificate(ctx context.Context, name string) (*certs.StoredCertificate, error)

	// ImportCertificate stores a certificate under the given name, replacing
	// any previous version.
	ImportCertificate(ctx context.Context, name string, crt *certs.Certificate) error
}

// CertificateStoreFactory constructs the certificate store selected by
// resolution.
type CertificateStoreFactory interface {
	New(store renewal.ResolvedCertificateStore) (CertificateStore, error)
}
