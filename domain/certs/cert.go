package certs

import "time"

// Certificate defines an issued certificate. Both Certificate and PrivateKey
// hold byte arrays of PEM encoded data.
type Certificate struct {
	Certificate []byte
	PrivateKey  []byte
}

// Bundle returns the certificate and private key as a single PEM bundle,
// the format expected by certificate stores that import both in one call.
func (c *Certificate) Bundle() []byte {
	bundle := make([]byte, 0, len(c.Certificate)+len(c.PrivateKey))
	bundle = append(bundle, c.Certificate...)
	bundle = append(bundle, c.PrivateKey...)
	return bundle
}

// StoredCertificate describes a certificate held by a certificate store.
// Stores return metadata only; private keys never leave the store.
type StoredCertificate struct {
	Name       string
	NotAfter   time.Time
	Thumbprint string
}
