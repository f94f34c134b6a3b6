// Package azure implements the storage adapter for Azure Blob Storage.
package azure

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/emprops/cloudstore/pkg/provider"
)

// Config configures an Azure adapter.
type Config struct {
	// AccountName is the storage account name (required).
	AccountName string

	// AccountKey is the shared account key (required).
	AccountKey string

	// Container is the blob container name (required; resolution of defaults
	// and overrides happens in pkg/credentials).
	Container string
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.AccountName == "" {
		return errors.New("azure config: AccountName: account name is required")
	}
	if c.AccountKey == "" {
		return errors.New("azure config: AccountKey: account key is required")
	}
	if c.Container == "" {
		return errors.New("azure config: Container: container name is required")
	}
	return nil
}

// Adapter implements provider.Adapter for Azure Blob Storage.
type Adapter struct {
	container *container.Client
	account   string
	name      string

	// Container provisioning calls, injectable for tests.
	getContainerProps func(ctx context.Context) error
	createContainer   func(ctx context.Context) error
}

// Ensure Adapter implements the interfaces.
var (
	_ provider.Adapter       = (*Adapter)(nil)
	_ provider.ObjectDeleter = (*Adapter)(nil)
)

// New creates an Azure adapter bound to cfg.Container.
//
// Construction materializes the container: its properties are read, and on
// not-found exactly one create is attempted. A concurrent creator winning the
// race (ContainerAlreadyExists) counts as success. Any other create failure
// is fatal so the adapter is never half-initialized.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, newError("New", cfg.Container, "", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AccountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, newError("New", cfg.Container, "", err)
	}

	a := &Adapter{
		container: client.ServiceClient().NewContainerClient(cfg.Container),
		account:   cfg.AccountName,
		name:      cfg.Container,
	}
	a.getContainerProps = func(ctx context.Context) error {
		_, err := a.container.GetProperties(ctx, nil)
		return err
	}
	a.createContainer = func(ctx context.Context) error {
		_, err := a.container.Create(ctx, nil)
		return err
	}

	if err := a.ensureContainer(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// ensureContainer checks the container exists and creates it when missing.
// An existing container is never re-created; a missing one gets exactly one
// create attempt whose outcome decides construction.
func (a *Adapter) ensureContainer(ctx context.Context) error {
	err := a.getContainerProps(ctx)
	if err == nil {
		return nil
	}
	if !bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return a.wrapError("New", "", err)
	}

	if err := a.createContainer(ctx); err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil
		}
		return a.wrapError("New", "", err)
	}
	return nil
}

// Bucket returns the container name the adapter is bound to.
func (a *Adapter) Bucket() string {
	return a.name
}

// URL returns the account+container public URL for key.
func (a *Adapter) URL(key string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", a.account, a.name, key)
}

// Put uploads the file at localPath under key, overwriting any existing blob.
func (a *Adapter) Put(ctx context.Context, key, localPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return a.wrapError("Put", key, err)
	}
	defer f.Close()

	opts := &blockblob.UploadFileOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}

	if _, err := a.container.NewBlockBlobClient(key).UploadFile(ctx, f, opts); err != nil {
		return a.wrapError("Put", key, err)
	}
	return nil
}

// Get downloads the blob at key to localPath.
func (a *Adapter) Get(ctx context.Context, key, localPath string) error {
	f, err := os.Create(localPath)
	if err != nil {
		return a.wrapError("Get", key, err)
	}

	if _, err := a.container.NewBlobClient(key).DownloadFile(ctx, f, nil); err != nil {
		f.Close()
		return a.wrapError("Get", key, err)
	}
	if err := f.Close(); err != nil {
		return a.wrapError("Get", key, err)
	}
	return nil
}

// Exists probes for the blob at key via a properties fetch.
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.container.NewBlobClient(key).GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, a.wrapError("Exists", key, err)
	}
	return true, nil
}

// Delete removes the blob at key.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	if _, err := a.container.NewBlobClient(key).Delete(ctx, nil); err != nil {
		return a.wrapError("Delete", key, err)
	}
	return nil
}

// Close releases any resources held by the adapter.
// The Azure client doesn't require explicit cleanup, but this satisfies the interface.
func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) wrapError(op, key string, err error) error {
	return newError(op, a.name, key, mapError(err))
}

func newError(op, bucket, key string, err error) error {
	return &provider.AdapterError{
		Op:       op,
		Provider: provider.KindAzure,
		Bucket:   bucket,
		Key:      key,
		Err:      err,
	}
}

// mapError converts Azure storage error codes to sentinel errors.
func mapError(err error) error {
	switch {
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return provider.ErrNotFound
	case bloberror.HasCode(err, bloberror.ContainerNotFound):
		return provider.ErrBucketNotFound
	case bloberror.HasCode(err, bloberror.AuthenticationFailed, bloberror.InvalidAuthenticationInfo):
		return provider.ErrInvalidCredentials
	case bloberror.HasCode(err, bloberror.AuthorizationFailure, bloberror.InsufficientAccountPermissions):
		return provider.ErrAccessDenied
	case bloberror.HasCode(err, bloberror.ServerBusy, bloberror.InternalError):
		return provider.ErrProviderUnavailable
	}

	// Fall back to HTTP status when the service returned no storage error code.
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case 404:
			return provider.ErrNotFound
		case 401:
			return provider.ErrInvalidCredentials
		case 403:
			return provider.ErrAccessDenied
		case 500, 503:
			return provider.ErrProviderUnavailable
		}
	}

	return err
}
