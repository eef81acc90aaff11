// Package resolve maps the typed configuration sections of a renewal request
// to concrete providers. Each provider category owns a registry keyed by a
// lower-cased type string; unregistered types are fatal configuration errors.
// Absent sections are substituted with synthetic defaults, and every optional
// property follows the same precedence: explicit value, then a value derived
// from a sibling already-resolved provider, then an error if still required.
package resolve

import (
	"fmt"
	"strings"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

// Resolver resolves the providers for one renewal request. Target resource
// and certificate store resolution are pure defaulting without I/O; resolving
// the challenge responder additionally acquires credentials for its storage
// backend, falling back through alternative sources when the managed
// identity is denied.
type Resolver struct {
	log     interfaces.Logger
	clients interfaces.StorageClientFactory
	secrets interfaces.SecretStore
}

// New creates a resolver with the provided collaborators.
func New(log interfaces.Logger, clients interfaces.StorageClientFactory, secrets interfaces.SecretStore) *Resolver {
	return &Resolver{
		log:     log,
		clients: clients,
		secrets: secrets,
	}
}

// ValidateRequest checks the request invariants before resolution.
func ValidateRequest(req *renewal.RenewalRequest) error {
	if len(req.HostNames) == 0 {
		return errs.NewConfiguration("hostNames", "at least one host name is required")
	}

	return nil
}

func notImplemented(category, typeName string) error {
	return errs.NewConfiguration(category, fmt.Sprintf("type %q is not implemented", typeName))
}

func normalizeType(typeName string) string {
	return strings.ToLower(typeName)
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}