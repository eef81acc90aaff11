package certs

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	certsDom "github.com/0xjbushell/lets-encrypt-azure/domain/certs"
)

var emptyTime = time.Time{}

// NotAfter parses the certificate and returns its NotAfter property.
func NotAfter(crt *certsDom.Certificate) (time.Time, error) {
	block, _ := pem.Decode(crt.Certificate)
	if block == nil {
		return emptyTime, fmt.Errorf("no PEM certificate found")
	}

	asnCrt, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return emptyTime, fmt.Errorf("parsing certificate: %w", err)
	}

	return asnCrt.NotAfter, nil
}
