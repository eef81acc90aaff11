package renewal

// ResolvedTarget is the concrete target resource handle produced by
// resolution. Kind records the registry type that resolved it.
type ResolvedTarget struct {
	Kind          string
	Name          string
	ResourceGroup string
	Endpoints     []string
}

// ResolvedCertificateStore is the concrete certificate store handle produced
// by resolution. Name identifies the store (a vault name, or a directory for
// filesystem stores); CertificateName is the key under which the certificate
// is stored.
type ResolvedCertificateStore struct {
	Kind            string
	Name            string
	CertificateName string
}
