package renew

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/app/resolve"
	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
	"github.com/0xjbushell/lets-encrypt-azure/common/logging"
	"github.com/0xjbushell/lets-encrypt-azure/domain/certs"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeCertStore struct {
	current  *certs.StoredCertificate
	getErr   error
	imported map[string]*certs.Certificate
}

func (s *fakeCertStore) GetCertificate(ctx context.Context, name string) (*certs.StoredCertificate, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}

	return s.current, nil
}

func (s *fakeCertStore) ImportCertificate(ctx context.Context, name string, crt *certs.Certificate) error {
	if s.imported == nil {
		s.imported = make(map[string]*certs.Certificate)
	}

	s.imported[name] = crt
	return nil
}

type fakeStoreFactory struct {
	store *fakeCertStore
}

func (f *fakeStoreFactory) New(store renewal.ResolvedCertificateStore) (interfaces.CertificateStore, error) {
	return f.store, nil
}

type fakeTarget struct {
	validated bool
	applied   []string
}

func (t *fakeTarget) ResourceID() string { return "/subscriptions/x/resourceGroups/rg1" }

func (t *fakeTarget) ValidateEndpoints(ctx context.Context) error {
	t.validated = true
	return nil
}

func (t *fakeTarget) ApplyCertificate(ctx context.Context, store renewal.ResolvedCertificateStore, hostNames []string) error {
	t.applied = hostNames
	return nil
}

type fakeTargetFactory struct {
	target *fakeTarget
}

func (f *fakeTargetFactory) New(target renewal.ResolvedTarget) (interfaces.TargetResource, error) {
	return f.target, nil
}

type fakeIssuer struct {
	issued int
}

func (i *fakeIssuer) Issue(ctx context.Context, hostNames []string, responder interfaces.ChallengeResponder) (*certs.Certificate, error) {
	i.issued++
	return &certs.Certificate{Certificate: []byte("cert"), PrivateKey: []byte("key")}, nil
}

type acceptingContainer struct{}

func (c *acceptingContainer) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (c *acceptingContainer) Upload(ctx context.Context, key string, data []byte) error {
	return nil
}

func (c *acceptingContainer) Delete(ctx context.Context, key string) error {
	return nil
}

type acceptingFactory struct{}

func (f *acceptingFactory) FromManagedIdentity(ctx context.Context, account, container string) (interfaces.BlobContainer, error) {
	return &acceptingContainer{}, nil
}

func (f *acceptingFactory) FromConnectionString(connectionString, container string) (interfaces.BlobContainer, error) {
	return &acceptingContainer{}, nil
}

type emptySecrets struct{}

func (s *emptySecrets) GetSecret(ctx context.Context, vaultName, secretName string) (string, error) {
	return "", errs.NewNotFound("secret", secretName, nil)
}

func newTestCmd(current *certs.StoredCertificate, now time.Time) (*Cmd, *fakeCertStore, *fakeTarget, *fakeIssuer) {
	log := logging.NewDiscard()
	resolver := resolve.New(log, &acceptingFactory{}, &emptySecrets{})
	certStore := &fakeCertStore{current: current}
	target := &fakeTarget{}
	issuer := &fakeIssuer{}

	cmd := New(log, resolver,
		&fakeStoreFactory{store: certStore},
		&fakeTargetFactory{target: target},
		issuer, &fixedClock{now: now}, 0)

	return cmd, certStore, target, issuer
}

func testRequest() *renewal.RenewalRequest {
	return &renewal.RenewalRequest{
		HostNames:      []string{"a.example.com"},
		TargetResource: &renewal.ConfigEntry{Type: "cdn", Name: "rg1"},
	}
}

func TestSkipsRenewalForFreshCertificate(t *testing.T) {
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	current := &certs.StoredCertificate{Name: "a-example-com", NotAfter: now.Add(60 * 24 * time.Hour)}
	cmd, certStore, _, issuer := newTestCmd(current, now)

	err := cmd.Execute(context.Background(), Model{Request: testRequest()})

	require.NoError(t, err)
	assert.Zero(t, issuer.issued)
	assert.Empty(t, certStore.imported)
}

func TestRenewsWhenCertificateAbsent(t *testing.T) {
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	cmd, certStore, target, issuer := newTestCmd(nil, now)

	err := cmd.Execute(context.Background(), Model{Request: testRequest()})

	require.NoError(t, err)
	assert.Equal(t, 1, issuer.issued)
	assert.Contains(t, certStore.imported, "a-example-com")
	assert.True(t, target.validated)
	assert.Equal(t, []string{"a.example.com"}, target.applied)
}

func TestRenewsNearExpiry(t *testing.T) {
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	current := &certs.StoredCertificate{Name: "a-example-com", NotAfter: now.Add(10 * 24 * time.Hour)}
	cmd, certStore, _, issuer := newTestCmd(current, now)

	err := cmd.Execute(context.Background(), Model{Request: testRequest()})

	require.NoError(t, err)
	assert.Equal(t, 1, issuer.issued)
	assert.Contains(t, certStore.imported, "a-example-com")
}

func TestRenewsWithoutTargetResource(t *testing.T) {
	now := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	cmd, certStore, target, _ := newTestCmd(nil, now)

	req := &renewal.RenewalRequest{
		HostNames: []string{"a.example.com"},
		CertificateStore: &renewal.ConfigEntry{
			Type:       "keyVault",
			Properties: map[string]interface{}{"name": "corp-vault"},
		},
		ChallengeResponder: &renewal.ConfigEntry{
			Type: "storageAccount",
			Name: "corpchallenge",
		},
	}

	err := cmd.Execute(context.Background(), Model{Request: req})

	require.NoError(t, err)
	assert.Contains(t, certStore.imported, "a-example-com")
	assert.False(t, target.validated, "no target resource must be touched")
}

func TestCancellationSurfacesUnchanged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd, certStore, target, issuer := newTestCmd(nil, time.Now())
	certStore.getErr = ctx.Err()

	err := cmd.Execute(ctx, Model{Request: testRequest()})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errs.IsConfiguration(err))
	assert.Zero(t, issuer.issued)
	assert.False(t, target.validated)
}

func TestRejectsRequestWithoutHostNames(t *testing.T) {
	cmd, _, _, _ := newTestCmd(nil, time.Now())

	err := cmd.Execute(context.Background(), Model{Request: &renewal.RenewalRequest{}})

	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}
