package resolve

import (
	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
	"github.com/0xjbushell/lets-encrypt-azure/common/names"
	"github.com/0xjbushell/lets-encrypt-azure/domain/renewal"
)

type storeBuilder func(req *renewal.RenewalRequest, target *renewal.ResolvedTarget, entry *renewal.ConfigEntry) (*renewal.ResolvedCertificateStore, error)

// storeBuilders maps lower-cased certificate store types to their resolution
// functions.
var storeBuilders = map[string]storeBuilder{
	"keyvault":   resolveKeyVaultStore,
	"filesystem": resolveFileSystemStore,
}

// defaultStoreEntry is substituted when the certificate store section is
// absent: a Key Vault named after the target resource.
func defaultStoreEntry() *renewal.ConfigEntry {
	return &renewal.ConfigEntry{Type: "keyVault"}
}

// ResolveCertificateStore resolves the certificate store section of a
// request. The already-resolved target provides the default store name; the
// first host name provides the default certificate name.
func (r *Resolver) ResolveCertificateStore(req *renewal.RenewalRequest, target *renewal.ResolvedTarget) (*renewal.ResolvedCertificateStore, error) {
	entry := req.CertificateStore
	if entry == nil {
		entry = defaultStoreEntry()
	}

	build, ok := storeBuilders[normalizeType(entry.Type)]
	if !ok {
		return nil, notImplemented("certificateStore", entry.Type)
	}

	return build(req, target, entry)
}

func defaultCertificateName(req *renewal.RenewalRequest, explicit string) string {
	if explicit != "" {
		return explicit
	}

	return names.Certificate(req.HostNames[0])
}

type keyVaultProperties struct {
	Name            string `json:"name"`
	CertificateName string `json:"certificateName"`
}

func resolveKeyVaultStore(req *renewal.RenewalRequest, target *renewal.ResolvedTarget, entry *renewal.ConfigEntry) (*renewal.ResolvedCertificateStore, error) {
	var props keyVaultProperties
	if err := entry.DecodeProperties(&props); err != nil {
		return nil, errs.NewConfiguration("certificateStore.properties", err.Error())
	}

	name := firstOf(props.Name, entry.Name)
	if name == "" && target != nil {
		name = target.Name
	}
	if name == "" {
		return nil, errs.NewConfiguration("certificateStore.name", "store name is required")
	}

	return &renewal.ResolvedCertificateStore{
		Kind:            "keyvault",
		Name:            name,
		CertificateName: defaultCertificateName(req, props.CertificateName),
	}, nil
}

type fileSystemProperties struct {
	Path            string `json:"path"`
	CertificateName string `json:"certificateName"`
}

func resolveFileSystemStore(req *renewal.RenewalRequest, target *renewal.ResolvedTarget, entry *renewal.ConfigEntry) (*renewal.ResolvedCertificateStore, error) {
	var props fileSystemProperties
	if err := entry.DecodeProperties(&props); err != nil {
		return nil, errs.NewConfiguration("certificateStore.properties", err.Error())
	}

	path := firstOf(props.Path, entry.Name)
	if path == "" {
		return nil, errs.NewConfiguration("certificateStore.path", "fileSystem requires a path")
	}

	return &renewal.ResolvedCertificateStore{
		Kind:            "filesystem",
		Name:            path,
		CertificateName: defaultCertificateName(req, props.CertificateName),
	}, nil
}
