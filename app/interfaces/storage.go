package interfaces

import "context"

// BlobContainer is the minimal storage surface the challenge responder and
// the credential fallback probe depend on.
type BlobContainer interface {
	// Exists reports whether the object at key is present. It fails with an
	// errs.AuthorizationDeniedError when the backing service rejects the
	// caller's identity; any other failure is returned unchanged.
	Exists(ctx context.Context, key string) (bool, error)

	// Upload stores data under key, overwriting any existing object.
	Upload(ctx context.Context, key string, data []byte) error

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error
}

// StorageClientFactory constructs blob containers for a storage account from
// either credential path of the fallback chain.
type StorageClientFactory interface {
	// FromManagedIdentity constructs a container client authenticating with a
	// renewing managed-identity token. The initial token is acquired before
	// the client is returned.
	FromManagedIdentity(ctx context.Context, account, container string) (BlobContainer, error)

	// FromConnectionString constructs a container client directly from an
	// explicit connection string.
	FromConnectionString(connectionString, container string) (BlobContainer, error)
}
