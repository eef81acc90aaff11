package resolve

import (
	"context"

	"github.com/0xjbushell/lets-encrypt-azure/app/fallback"
	"github.com/0xjbushell/lets-encrypt-azure/app/interfaces"
	"github.com/0xjbushell/lets-encrypt-azure/app/respond"
	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
	"github.com/0xjbushell/lets-encrypt-azure/common/names"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

type responderBuilder func(ctx context.Context, r *Resolver, req *renewal.RenewalRequest, target *renewal.ResolvedTarget, store *renewal.ResolvedCertificateStore, entry *renewal.ConfigEntry) (interfaces.ChallengeResponder, error)

// responderBuilders maps lower-cased challenge responder types to their
// resolution functions.
var responderBuilders = map[string]responderBuilder{
	"storageaccount": resolveStorageResponder,
}

// defaultResponderEntry is substituted when the challenge responder section
// is absent: a storage account whose name derives from the other resolved
// providers.
func defaultResponderEntry() *renewal.ConfigEntry {
	return &renewal.ConfigEntry{Type: "storageAccount"}
}

// defaultChallengeContainer is the web container of a static-website-enabled
// storage account, served behind the site's root path.
const defaultChallengeContainer = "$web"

// ResolveChallengeResponder resolves the challenge responder section of a
// request. For the storage-backed responder this acquires credentials for the
// storage account, running the fallback chain when the managed identity is
// denied, and returns a ready-to-use responder.
func (r *Resolver) ResolveChallengeResponder(ctx context.Context, req *renewal.RenewalRequest, target *renewal.ResolvedTarget, store *renewal.ResolvedCertificateStore) (interfaces.ChallengeResponder, error) {
	entry := req.ChallengeResponder
	if entry == nil {
		entry = defaultResponderEntry()
	}

	build, ok := responderBuilders[normalizeType(entry.Type)]
	if !ok {
		return nil, notImplemented("challengeResponder", entry.Type)
	}

	return build(ctx, r, req, target, store, entry)
}

type storageAccountProperties struct {
	AccountName      string `json:"accountName"`
	ContainerName    string `json:"containerName"`
	ConnectionString string `json:"connectionString"`
	KeyVaultName     string `json:"keyVaultName"`
	SecretName       string `json:"secretName"`
}

func resolveStorageResponder(ctx context.Context, r *Resolver, req *renewal.RenewalRequest, target *renewal.ResolvedTarget, store *renewal.ResolvedCertificateStore, entry *renewal.ConfigEntry) (interfaces.ChallengeResponder, error) {
	var props storageAccountProperties
	if err := entry.DecodeProperties(&props); err != nil {
		return nil, errs.NewConfiguration("challengeResponder.properties", err.Error())
	}

	account := firstOf(props.AccountName, entry.Name)
	if account == "" && target != nil {
		account = names.StorageAccount(target.Name)
	}
	if account == "" && store != nil {
		account = names.StorageAccount(store.Name)
	}
	if account == "" {
		return nil, errs.NewConfiguration("challengeResponder.accountName", "account name is required")
	}

	container := firstOf(props.ContainerName, defaultChallengeContainer)

	vault := props.KeyVaultName
	if vault == "" && store != nil && store.Kind == "keyvault" {
		vault = store.Name
	}

	sources := fallback.Sources{
		ConnectionString: props.ConnectionString,
		VaultName:        vault,
		SecretName:       props.SecretName,
	}

	outcome, err := fallback.New(r.log, r.clients, r.secrets).Execute(ctx, account, container, sources)
	if err != nil {
		return nil, err
	}

	if outcome.Source != fallback.SourcePrimary {
		r.log.
			WithField("account", account).
			WithField("source", outcome.Source.String()).
			Info("challenge responder using fallback credential source")
	}

	return respond.NewStorage(r.log, outcome.Client), nil
}
