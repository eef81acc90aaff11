// Package renew implements the Renew Certificate command.
package renew

import (
	"context"
	"time"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/app/resolve"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

// DefaultRenewalThreshold is the remaining certificate lifetime below which
// a stored certificate is renewed.
const DefaultRenewalThreshold = 30 * 24 * time.Hour

// Cmd defines the Renew Certificate command. It resolves the providers for
// one renewal request, decides whether the stored certificate still has
// enough lifetime, and otherwise issues, stores and applies a new
// certificate.
type Cmd struct {
	log       interfaces.Logger
	resolver  *resolve.Resolver
	stores    interfaces.CertificateStoreFactory
	targets   interfaces.TargetFactory
	issuer    interfaces.CertIssuer
	clock     interfaces.Time
	threshold time.Duration
}

// New creates a new Renew Certificate command with the provided
// collaborators. A non-positive threshold selects DefaultRenewalThreshold.
func New(
	log interfaces.Logger,
	resolver *resolve.Resolver,
	stores interfaces.CertificateStoreFactory,
	targets interfaces.TargetFactory,
	issuer interfaces.CertIssuer,
	clock interfaces.Time,
	threshold time.Duration,
) *Cmd {
	if threshold <= 0 {
		threshold = DefaultRenewalThreshold
	}

	return &Cmd{
		log:       log,
		resolver:  resolver,
		stores:    stores,
		targets:   targets,
		issuer:    issuer,
		clock:     clock,
		threshold: threshold,
	}
}

// Model defines the input for the Renew Certificate command.
type Model struct {
	Request *renewal.RenewalRequest
}

// Execute performs one renewal run. Target resource and certificate store
// resolve first (pure defaulting); the challenge responder resolves last
// because it reads the other resolved values as defaults and performs I/O.
func (c *Cmd) Execute(ctx context.Context, model Model) error {
	req := model.Request

	if err := resolve.ValidateRequest(req); err != nil {
		return err
	}

	target, err := c.resolver.ResolveTarget(req)
	if err != nil {
		return err
	}

	store, err := c.resolver.ResolveCertificateStore(req, target)
	if err != nil {
		return err
	}

	certStore, err := c.stores.New(*store)
	if err != nil {
		return err
	}

	current, err := certStore.GetCertificate(ctx, store.CertificateName)
	if err != nil {
		return err
	}

	if current != nil {
		remaining := current.NotAfter.Sub(c.clock.Now())
		if remaining > c.threshold {
			c.log.
				WithField("certificate", store.CertificateName).
				WithField("not_after", current.NotAfter).
				Info("certificate does not need renewal")

			return nil
		}
	}

	responder, err := c.resolver.ResolveChallengeResponder(ctx, req, target, store)
	if err != nil {
		return err
	}

	crt, err := c.issuer.Issue(ctx, req.HostNames, responder)
	if err != nil {
		return err
	}

	if err := certStore.ImportCertificate(ctx, store.CertificateName, crt); err != nil {
		return err
	}

	if target == nil {
		return nil
	}

	targetResource, err := c.targets.New(*target)
	if err != nil {
		return err
	}

	if err := targetResource.ValidateEndpoints(ctx); err != nil {
		return err
	}

	return targetResource.ApplyCertificate(ctx, *store, req.HostNames)
}
