package interfaces

import (
	"context"

	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

// TargetResource is the cloud resource that ultimately consumes the renewed
// certificate.
type TargetResource interface {
	// ResourceID returns the fully qualified identifier of the target.
	ResourceID() string

	// ValidateEndpoints checks that every configured endpoint exists on the
	// target.
	ValidateEndpoints(ctx context.Context) error

	// ApplyCertificate binds the certificate held by the store to the
	// target's custom domains matching the given host names.
	ApplyCertificate(ctx context.Context, store renewal.ResolvedCertificateStore, hostNames []string) error
}

// TargetFactory constructs the target resource backend for a resolved target.
type TargetFactory interface {
	New(target renewal.ResolvedTarget) (TargetResource, error)
}
