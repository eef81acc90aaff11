// Package certgen implements certificate issuers.
package certgen

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"time"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/domain/certs"
)

// SelfSignedIssuer issues self-signed certificates. It exists for local
// development and tests; no ownership challenge is performed, so the
// responder is never consulted.
type SelfSignedIssuer struct {
	keyBits  int
	validity time.Duration
}

// NewSelfSigned creates a new self-signed certificate issuer.
func NewSelfSigned(keyBits int) *SelfSignedIssuer {
	return &SelfSignedIssuer{
		keyBits:  keyBits,
		validity: 365 * 24 * time.Hour,
	}
}

// Issue creates a self-signed certificate covering the host names.
func (g *SelfSignedIssuer) Issue(ctx context.Context, hostNames []string, _ interfaces.ChallengeResponder) (*certs.Certificate, error) {
	if len(hostNames) < 1 {
		return nil, fmt.Errorf("host names missing: provide at least 1 host name")
	}

	priv, err := rsa.GenerateKey(rand.Reader, g.keyBits)
	if err != nil {
		return nil, err
	}

	notBefore := time.Now().UTC()
	notAfter := notBefore.Add(g.validity)

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to generate serial number: %v", err)
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName: hostNames[0],
		},
		NotBefore: notBefore,
		NotAfter:  notAfter,

		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,

		DNSNames: hostNames,
	}

	crtBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %v", err)
	}

	return &certs.Certificate{
		Certificate: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: crtBytes}),
		PrivateKey:  pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)}),
	}, nil
}
