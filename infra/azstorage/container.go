// Package azstorage adapts Azure Blob Storage to the blob container surface
// used by the challenge responder and the credential fallback probe.
package azstorage

import (
	"context"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/0xjbushell/lets-encrypt-azure/common/errs"
)

// StorageResource is the token scope for Azure Storage data-plane access.
const StorageResource = "https://storage.azure.com/.default"

// Container wraps one blob container of a storage account.
type Container struct {
	account string
	client  *container.Client
}

// Exists reports whether the blob at key is present. An authorization
// rejection from the account is returned as an errs.AuthorizationDeniedError
// so the fallback chain can distinguish it from other failures.
func (c *Container) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.NewBlobClient(key).GetProperties(ctx, nil)
	return c.existsResult(err)
}

// existsResult maps the properties response: a missing blob or container is
// a negative result, not a failure.
func (c *Container) existsResult(err error) (bool, error) {
	if err == nil {
		return true, nil
	}

	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return false, nil
	}

	return false, c.classify(err)
}

// Upload stores data under key, overwriting any existing blob.
func (c *Container) Upload(ctx context.Context, key string, data []byte) error {
	_, err := c.client.NewBlockBlobClient(key).UploadBuffer(ctx, data, nil)

	return c.classify(err)
}

// Delete removes the blob at key.
func (c *Container) Delete(ctx context.Context, key string) error {
	_, err := c.client.NewBlobClient(key).Delete(ctx, nil)

	return c.classify(err)
}

// classify maps an authorization rejection to the typed denied error and
// leaves every other failure unchanged.
func (c *Container) classify(err error) error {
	if err == nil {
		return nil
	}

	if bloberror.HasCode(err,
		bloberror.AuthorizationFailure,
		bloberror.AuthorizationPermissionMismatch,
		bloberror.InsufficientAccountPermissions,
	) {
		return errs.NewAuthorizationDenied(c.account, err)
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusForbidden {
		return errs.NewAuthorizationDenied(c.account, err)
	}

	return err
}
