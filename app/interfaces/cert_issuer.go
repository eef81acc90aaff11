package interfaces

import (
	"context"

	"github.com/0xjbushell/lets-encrypt-azure/domain/certs"
)

// CertIssuer obtains a certificate for a list of host names, using the
// responder to answer ownership challenges. The validation protocol exchange
// itself happens behind this interface.
type CertIssuer interface {
	Issue(ctx context.Context, hostNames []string, responder ChallengeResponder) (*certs.Certificate, error)
}
