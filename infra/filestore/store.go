// Package filestore implements a filesystem-backed certificate store,
// intended for local development.
package filestore

import (
	"context"
	"fmt"
	"sync"

	commonCerts "github.com/0xjbushell/lets-encrypt-azure/common/certs"
	"github.com/0xjbushell/lets-encrypt-azure/domain/certs"
	"github.com/0xjbushell/lets-encrypt-azure/infra/filesystem"
)

const (
	certSuffix = "-crt.pem"
	keySuffix  = "-key.pem"
)

// Store implements filesystem based storage for certificates.
type Store struct {
	mu sync.Mutex
	fs filesystem.FileSystem
}

// New creates a new filesystem-backed certificate store.
func New(fs filesystem.FileSystem) *Store {
	return &Store{
		fs: fs,
	}
}

// GetCertificate retrieves metadata for the named certificate.
// Returns a nil certificate if it does not exist.
func (s *Store) GetCertificate(ctx context.Context, name string) (*certs.StoredCertificate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	certPath := name + certSuffix

	exists, err := s.fs.FileExists(certPath)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, nil
	}

	certBytes, err := s.fs.ReadBytes(certPath)
	if err != nil {
		return nil, fmt.Errorf("reading certificate from path %q: %w", certPath, err)
	}

	notAfter, err := commonCerts.NotAfter(&certs.Certificate{Certificate: certBytes})
	if err != nil {
		return nil, err
	}

	return &certs.StoredCertificate{
		Name:     name,
		NotAfter: notAfter,
	}, nil
}

// ImportCertificate stores a certificate and its private key next to each
// other, replacing any previous version.
func (s *Store) ImportCertificate(ctx context.Context, name string, crt *certs.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.WriteBytes(name+certSuffix, crt.Certificate); err != nil {
		return fmt.Errorf("writing certificate: %w", err)
	}

	if err := s.fs.WriteBytes(name+keySuffix, crt.PrivateKey); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	return nil
}
