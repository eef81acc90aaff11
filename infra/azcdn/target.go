// Package azcdn adapts Azure CDN profiles to the target resource interface.
package azcdn

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cdn/armcdn/v2"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

// Target is a CDN profile receiving renewed certificates on its custom
// domains.
type Target struct {
	log            interfaces.Logger
	subscriptionID string
	resolved       renewal.ResolvedTarget
	endpoints      *armcdn.EndpointsClient
	domains        *armcdn.CustomDomainsClient
}

// NewTarget creates a CDN target for a resolved target handle.
func NewTarget(log interfaces.Logger, cred azcore.TokenCredential, subscriptionID string, resolved renewal.ResolvedTarget) (*Target, error) {
	endpoints, err := armcdn.NewEndpointsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	domains, err := armcdn.NewCustomDomainsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, err
	}

	return &Target{
		log:            log,
		subscriptionID: subscriptionID,
		resolved:       resolved,
		endpoints:      endpoints,
		domains:        domains,
	}, nil
}

// ResourceID returns the fully qualified identifier of the CDN profile.
func (t *Target) ResourceID() string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Cdn/profiles/%s",
		t.subscriptionID, t.resolved.ResourceGroup, t.resolved.Name)
}

// ValidateEndpoints checks that every configured endpoint exists on the
// profile.
func (t *Target) ValidateEndpoints(ctx context.Context) error {
	for _, name := range t.resolved.Endpoints {
		_, err := t.endpoints.Get(ctx, t.resolved.ResourceGroup, t.resolved.Name, name, nil)
		if err != nil {
			return fmt.Errorf("validating endpoint %q: %w", name, err)
		}
	}

	return nil
}

// ApplyCertificate binds the Key Vault certificate to every custom domain of
// the configured endpoints whose host name is covered by the renewed
// certificate. The rollout continues asynchronously inside the CDN; its
// propagation is not awaited here.
func (t *Target) ApplyCertificate(ctx context.Context, store renewal.ResolvedCertificateStore, hostNames []string) error {
	covered := make(map[string]bool, len(hostNames))
	for _, h := range hostNames {
		covered[h] = true
	}

	for _, endpoint := range t.resolved.Endpoints {
		pager := t.domains.NewListByEndpointPager(t.resolved.ResourceGroup, t.resolved.Name, endpoint, nil)

		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("listing custom domains of endpoint %q: %w", endpoint, err)
			}

			for _, domain := range page.Value {
				if domain == nil || domain.Name == nil || domain.Properties == nil || domain.Properties.HostName == nil {
					continue
				}

				if !covered[*domain.Properties.HostName] {
					continue
				}

				if err := t.enableHTTPS(ctx, endpoint, *domain.Name, store); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (t *Target) enableHTTPS(ctx context.Context, endpoint, domainName string, store renewal.ResolvedCertificateStore) error {
	t.log.
		WithField("endpoint", endpoint).
		WithField("custom_domain", domainName).
		WithField("vault", store.Name).
		WithField("certificate", store.CertificateName).
		Info("binding certificate to custom domain")

	_, err := t.domains.BeginEnableCustomHTTPS(ctx,
		t.resolved.ResourceGroup, t.resolved.Name, endpoint, domainName,
		&armcdn.CustomDomainsClientBeginEnableCustomHTTPSOptions{
			CustomDomainHTTPSParameters: &armcdn.UserManagedHTTPSParameters{
				CertificateSource: to.Ptr(armcdn.CertificateSourceAzureKeyVault),
				ProtocolType:      to.Ptr(armcdn.ProtocolTypeServerNameIndication),
				CertificateSourceParameters: &armcdn.KeyVaultCertificateSourceParameters{
					SubscriptionID:    to.Ptr(t.subscriptionID),
					ResourceGroupName: to.Ptr(t.resolved.ResourceGroup),
					VaultName:         to.Ptr(store.Name),
					SecretName:        to.Ptr(store.CertificateName),
					TypeName:          to.Ptr(armcdn.KeyVaultCertificateSourceParametersTypeNameKeyVaultCertificateSourceParameters),
					UpdateRule:        to.Ptr(armcdn.UpdateRuleNoAction),
					DeleteRule:        to.Ptr(armcdn.DeleteRuleNoAction),
				},
			},
		})
	if err != nil {
		return fmt.Errorf("enabling https on custom domain %q: %w", domainName, err)
	}

	return nil
}
