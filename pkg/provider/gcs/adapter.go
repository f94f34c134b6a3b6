// Package gcs implements the storage adapter for Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/emprops/cloudstore/pkg/provider"
)

// Config configures a GCS adapter.
type Config struct {
	// Bucket is the GCS bucket name (required).
	Bucket string

	// CredentialsFile is a path to a service-account JSON key. When empty the
	// client falls back to application default credentials.
	CredentialsFile string
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("gcs config: Bucket: bucket name is required")
	}
	return nil
}

// Adapter implements provider.Adapter for Google Cloud Storage.
type Adapter struct {
	client *gcstorage.Client
	bucket string
}

// Ensure Adapter implements the interfaces.
var (
	_ provider.Adapter       = (*Adapter)(nil)
	_ provider.ObjectDeleter = (*Adapter)(nil)
)

// New creates a GCS adapter bound to cfg.Bucket.
//
// An explicit service-account file takes precedence; otherwise the client is
// built with ambient default credentials.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, &provider.AdapterError{
			Op:       "New",
			Provider: provider.KindGCS,
			Bucket:   cfg.Bucket,
			Err:      err,
		}
	}

	return &Adapter{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Bucket returns the bucket name the adapter is bound to.
func (a *Adapter) Bucket() string {
	return a.bucket
}

// URL returns the path-style public URL for key.
func (a *Adapter) URL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucket, key)
}

// Put uploads the file at localPath under key.
func (a *Adapter) Put(ctx context.Context, key, localPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return a.wrapError("Put", key, err)
	}
	defer f.Close()

	w := a.client.Bucket(a.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return a.wrapError("Put", key, err)
	}
	// Writer errors (including permission failures) surface on Close.
	if err := w.Close(); err != nil {
		return a.wrapError("Put", key, err)
	}
	return nil
}

// Get downloads the object at key to localPath.
func (a *Adapter) Get(ctx context.Context, key, localPath string) error {
	r, err := a.client.Bucket(a.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return a.wrapError("Get", key, err)
	}
	defer r.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return a.wrapError("Get", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return a.wrapError("Get", key, err)
	}
	if err := f.Close(); err != nil {
		return a.wrapError("Get", key, err)
	}
	return nil
}

// Exists probes for the object at key via an attributes fetch.
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.Bucket(a.bucket).Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcstorage.ErrObjectNotExist) {
			return false, nil
		}
		return false, a.wrapError("Exists", key, err)
	}
	return true, nil
}

// Delete removes the object at key.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Bucket(a.bucket).Object(key).Delete(ctx); err != nil {
		return a.wrapError("Delete", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// wrapError converts GCS errors to adapter errors with appropriate sentinel errors.
func (a *Adapter) wrapError(op, key string, err error) error {
	wrapped := &provider.AdapterError{
		Op:       op,
		Provider: provider.KindGCS,
		Bucket:   a.bucket,
		Key:      key,
		Err:      err,
	}

	switch {
	case errors.Is(err, gcstorage.ErrObjectNotExist):
		wrapped.Err = provider.ErrNotFound
		return wrapped
	case errors.Is(err, gcstorage.ErrBucketNotExist):
		wrapped.Err = provider.ErrBucketNotFound
		return wrapped
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 404:
			wrapped.Err = provider.ErrNotFound
		case 401:
			wrapped.Err = provider.ErrInvalidCredentials
		case 403:
			wrapped.Err = provider.ErrAccessDenied
		case 500, 503:
			wrapped.Err = provider.ErrProviderUnavailable
		}
	}

	return wrapped
}
