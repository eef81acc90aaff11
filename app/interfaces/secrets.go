package interfaces

import "context"

// SecretStore retrieves named secrets from a secret store. A missing secret
// or vault entry is reported as an errs.NotFoundError, distinguishable from
// transport and authorization failures.
type SecretStore interface {
	GetSecret(ctx context.Context, vaultName, secretName string) (string, error)
}
