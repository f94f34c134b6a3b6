// Package storeclient is the public face of the storage layer: it resolves
// credentials, constructs the matching backend adapter once, and exposes
// upload/download/verify operations with a uniform result contract.
//
// Construction is the only hard-error path. Every per-file operation reports
// failure as data (a result value), never as a raised fault, so batch callers
// can tally partial success.
package storeclient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/emprops/cloudstore/pkg/credentials"
	"github.com/emprops/cloudstore/pkg/provider"
	"github.com/emprops/cloudstore/pkg/provider/azure"
	"github.com/emprops/cloudstore/pkg/provider/gcs"
	"github.com/emprops/cloudstore/pkg/provider/s3"
)

// Options configures a Client.
type Options struct {
	// Provider is the provider tag (aws|google|azure). Empty falls back to
	// the CLOUD_PROVIDER selector in the chain, then to aws.
	Provider string

	// Bucket overrides the resolved bucket/container name.
	Bucket string

	// Chain is the ordered credential source list. Nil uses the default
	// chain (process environment, .env, .env.local in the working directory).
	Chain credentials.Chain

	// Adapter, when set, bypasses credential resolution entirely and binds
	// the client to the given backend. Used by tests and offline runs.
	Adapter provider.Adapter

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// VerifyAttempts bounds the post-write verification loop. Default 5.
	VerifyAttempts int

	// VerifyDelay is the fixed pause between probes. Default 1s.
	VerifyDelay time.Duration

	// Sleep replaces the inter-probe pause, for tests.
	Sleep SleepFunc
}

// UploadOptions controls key construction for a single upload.
type UploadOptions struct {
	// Prefix is the folder part of the key; normalized per BuildKey.
	Prefix string

	// TargetName replaces the source filename. When set, no index suffix is
	// ever applied.
	TargetName string

	// Index, when non-nil, appends "_<index>" before the extension to
	// disambiguate batch members.
	Index *int
}

// UploadResult is the outcome of one upload attempt. Callers branch on OK;
// URL and Error are never both meaningful.
type UploadResult struct {
	OK    bool
	Key   string
	URL   string
	Error string
}

// Client orchestrates uploads and downloads against one provider backend.
// Safe for concurrent use once constructed.
type Client struct {
	kind    provider.Kind
	adapter provider.Adapter
	logger  *zap.Logger

	verifyAttempts int
	verifyDelay    time.Duration
	sleep          SleepFunc
}

// New constructs a Client for the configured provider.
//
// Credential resolution failures are fatal here and nowhere else: a client
// with partial credentials is never returned.
func New(ctx context.Context, opts Options) (*Client, error) {
	c := &Client{
		logger:         opts.Logger,
		verifyAttempts: opts.VerifyAttempts,
		verifyDelay:    opts.VerifyDelay,
		sleep:          opts.Sleep,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.verifyAttempts <= 0 {
		c.verifyAttempts = DefaultVerifyAttempts
	}
	if c.verifyDelay <= 0 {
		c.verifyDelay = DefaultVerifyDelay
	}
	if c.sleep == nil {
		c.sleep = defaultSleep
	}

	if opts.Adapter != nil {
		c.kind = provider.ParseKind(opts.Provider)
		c.adapter = opts.Adapter
		return c, nil
	}

	chain := opts.Chain
	if chain == nil {
		chain = credentials.DefaultChain(".")
	}

	kind := credentials.ResolveProvider(chain)
	if opts.Provider != "" {
		kind = provider.ParseKind(opts.Provider)
	}
	bucket := credentials.ResolveBucket(kind, chain, opts.Bucket)

	creds, err := credentials.Resolve(kind, chain)
	if err != nil {
		return nil, err
	}

	adapter, err := newAdapter(ctx, kind, bucket, creds)
	if err != nil {
		return nil, err
	}

	c.kind = kind
	c.adapter = adapter
	c.logger.Debug("Storage client ready",
		zap.String("provider", kind.String()),
		zap.String("bucket", adapter.Bucket()))
	return c, nil
}

// newAdapter builds the backend adapter matching kind from resolved credentials.
func newAdapter(ctx context.Context, kind provider.Kind, bucket string, creds *credentials.Credentials) (provider.Adapter, error) {
	switch kind {
	case provider.KindGCS:
		return gcs.New(ctx, gcs.Config{
			Bucket:          bucket,
			CredentialsFile: creds.GCS.CredentialsFile,
		})
	case provider.KindAzure:
		return azure.New(ctx, azure.Config{
			AccountName: creds.Azure.AccountName,
			AccountKey:  creds.Azure.AccountKey,
			Container:   bucket,
		})
	default:
		return s3.New(ctx, s3.Config{
			Bucket:          bucket,
			Region:          creds.S3.Region,
			AccessKeyID:     creds.S3.AccessKeyID,
			SecretAccessKey: creds.S3.SecretAccessKey,
		})
	}
}

// Provider returns the active provider kind.
func (c *Client) Provider() provider.Kind {
	return c.kind
}

// Bucket returns the resolved bucket/container name.
func (c *Client) Bucket() string {
	return c.adapter.Bucket()
}

// UploadFile uploads one local file and verifies it became visible.
//
// A missing local file is a soft failure so batch callers can continue with
// the remaining files. A put that cannot be verified within the attempt
// budget is reported as failure even though bytes were physically written.
func (c *Client) UploadFile(ctx context.Context, localPath string, opts UploadOptions) UploadResult {
	if _, err := os.Stat(localPath); err != nil {
		if os.IsNotExist(err) {
			return UploadResult{Error: fmt.Sprintf("file not found: %s", localPath)}
		}
		return UploadResult{Error: fmt.Sprintf("cannot read %s: %v", localPath, err)}
	}

	filename := opts.TargetName
	index := opts.Index
	if filename == "" {
		filename = filepath.Base(localPath)
	} else {
		// An explicit target name is used verbatim.
		index = nil
	}
	key := BuildKey(opts.Prefix, filename, index)
	contentType := detectContentType(localPath)

	c.logger.Info("Uploading file",
		zap.String("path", localPath),
		zap.String("provider", c.kind.String()),
		zap.String("bucket", c.adapter.Bucket()),
		zap.String("key", key),
		zap.String("contentType", contentType))

	if err := c.adapter.Put(ctx, key, localPath, contentType); err != nil {
		c.logger.Error("Upload failed", zap.String("key", key), zap.Error(err))
		return UploadResult{Key: key, Error: fmt.Sprintf("error uploading file: %v", err)}
	}

	if !c.waitVisible(ctx, key) {
		// The object may exist despite the reported failure; log this
		// distinctly from a write failure.
		c.logger.Error("Upload written but not verified",
			zap.String("key", key),
			zap.Int("attempts", c.verifyAttempts))
		return UploadResult{
			Key:   key,
			Error: fmt.Sprintf("upload of %s could not be verified after %d attempts", key, c.verifyAttempts),
		}
	}

	url := c.adapter.URL(key)
	c.logger.Info("Upload verified", zap.String("key", key), zap.String("url", url))
	return UploadResult{OK: true, Key: key, URL: url}
}

// UploadFiles uploads each path in order. An index suffix is applied only
// when the batch has more than one element, so single uploads keep an
// unmodified filename. Each element succeeds or fails independently.
func (c *Client) UploadFiles(ctx context.Context, localPaths []string, prefix string) []UploadResult {
	results := make([]UploadResult, 0, len(localPaths))
	for i, p := range localPaths {
		opts := UploadOptions{Prefix: prefix}
		if len(localPaths) > 1 {
			idx := i
			opts.Index = &idx
		}
		results = append(results, c.UploadFile(ctx, p, opts))
	}
	return results
}

// DownloadFile fetches the object at key to localPath, creating any missing
// parent directories first. Failures are returned as (false, message).
func (c *Client) DownloadFile(ctx context.Context, key, localPath string) (bool, string) {
	abs, err := filepath.Abs(localPath)
	if err != nil {
		return false, fmt.Sprintf("error resolving local path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return false, fmt.Sprintf("error creating local directory: %v", err)
	}

	c.logger.Info("Downloading object",
		zap.String("provider", c.kind.String()),
		zap.String("bucket", c.adapter.Bucket()),
		zap.String("key", key),
		zap.String("path", abs))

	if err := c.adapter.Get(ctx, key, abs); err != nil {
		c.logger.Error("Download failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Sprintf("error downloading file: %v", err)
	}
	return true, ""
}

// Exists probes the backend for key once.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	return c.adapter.Exists(ctx, key)
}

// WaitVisible runs the bounded verification poll against key and reports
// whether it became visible within the attempt budget.
func (c *Client) WaitVisible(ctx context.Context, key string) bool {
	return c.waitVisible(ctx, key)
}

// Delete removes key when the backend supports deletion. It reports whether
// the adapter exposes the capability.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	d, ok := c.adapter.(provider.ObjectDeleter)
	if !ok {
		return false, nil
	}
	return true, d.Delete(ctx, key)
}

// Close releases the underlying adapter.
func (c *Client) Close() error {
	return c.adapter.Close()
}
