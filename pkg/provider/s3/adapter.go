package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/emprops/cloudstore/pkg/provider"
)

// Adapter implements provider.Adapter for AWS S3.
type Adapter struct {
	client *s3.Client
	bucket string
}

// Ensure Adapter implements the interfaces.
var (
	_ provider.Adapter       = (*Adapter)(nil)
	_ provider.ObjectDeleter = (*Adapter)(nil)
)

// New creates an S3 adapter bound to cfg.Bucket.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, &provider.AdapterError{
			Op:       "New",
			Provider: provider.KindS3,
			Bucket:   cfg.Bucket,
			Err:      err,
		}
	}

	return &Adapter{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

// loadAWSConfig builds the AWS configuration with appropriate credentials.
func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	// Use explicit credentials if provided
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		staticCreds := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (empty for long-term credentials)
		)
		opts = append(opts, config.WithCredentialsProvider(staticCreds))
	}

	return config.LoadDefaultConfig(ctx, opts...)
}

// Bucket returns the bucket name the adapter is bound to.
func (a *Adapter) Bucket() string {
	return a.bucket
}

// URL returns the virtual-hosted-style public URL for key.
func (a *Adapter) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", a.bucket, key)
}

// Put uploads the file at localPath under key.
func (a *Adapter) Put(ctx context.Context, key, localPath, contentType string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return a.wrapError("Put", key, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return a.wrapError("Put", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := a.client.PutObject(ctx, input); err != nil {
		return a.wrapError("Put", key, err)
	}
	return nil
}

// Get downloads the object at key to localPath.
func (a *Adapter) Get(ctx context.Context, key, localPath string) error {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return a.wrapError("Get", key, err)
	}
	defer out.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return a.wrapError("Get", key, err)
	}

	if _, err := io.Copy(f, out.Body); err != nil {
		f.Close()
		return a.wrapError("Get", key, err)
	}
	if err := f.Close(); err != nil {
		return a.wrapError("Get", key, err)
	}
	return nil
}

// Exists probes for the object at key via HeadObject.
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		wrapped := a.wrapError("Exists", key, err)
		if provider.IsNotFound(wrapped) {
			return false, nil
		}
		return false, wrapped
	}
	return true, nil
}

// Delete removes the object at key.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return a.wrapError("Delete", key, err)
	}
	return nil
}

// Close releases any resources held by the adapter.
// The S3 client doesn't require explicit cleanup, but this satisfies the interface.
func (a *Adapter) Close() error {
	return nil
}

// wrapError converts S3 errors to adapter errors with appropriate sentinel errors.
func (a *Adapter) wrapError(op, key string, err error) error {
	wrapped := &provider.AdapterError{
		Op:       op,
		Provider: provider.KindS3,
		Bucket:   a.bucket,
		Key:      key,
		Err:      err,
	}

	// Check for specific S3 error types first
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket

	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchKey):
		wrapped.Err = provider.ErrNotFound
		return wrapped
	case errors.As(err, &noSuchBucket):
		wrapped.Err = provider.ErrBucketNotFound
		return wrapped
	}

	// Check smithy API errors for error codes
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			wrapped.Err = provider.ErrNotFound
		case "NoSuchBucket":
			wrapped.Err = provider.ErrBucketNotFound
		case "AccessDenied", "Forbidden":
			wrapped.Err = provider.ErrAccessDenied
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			wrapped.Err = provider.ErrInvalidCredentials
		case "ServiceUnavailable", "InternalError":
			wrapped.Err = provider.ErrProviderUnavailable
		}
		return wrapped
	}

	// Fallback: check error message for common cases
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "NoSuchKey") || strings.Contains(errMsg, "NotFound") || strings.Contains(errMsg, "404"):
		wrapped.Err = provider.ErrNotFound
	case strings.Contains(errMsg, "NoSuchBucket"):
		wrapped.Err = provider.ErrBucketNotFound
	case strings.Contains(errMsg, "AccessDenied") || strings.Contains(errMsg, "Forbidden") || strings.Contains(errMsg, "403"):
		wrapped.Err = provider.ErrAccessDenied
	case strings.Contains(errMsg, "InvalidAccessKeyId") || strings.Contains(errMsg, "SignatureDoesNotMatch"):
		wrapped.Err = provider.ErrInvalidCredentials
	case strings.Contains(errMsg, "ServiceUnavailable") || strings.Contains(errMsg, "503"):
		wrapped.Err = provider.ErrProviderUnavailable
	}

	return wrapped
}
