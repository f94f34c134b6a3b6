// Package credentials resolves provider selection and per-provider secrets
// from a layered chain of configuration sources.
//
// Resolution is a pure function over an explicit, ordered list of sources
// (process environment, then optional dotenv override files). Nothing here
// reads or mutates global process state once a chain has been captured, so
// resolution is deterministic and unit-testable.
package credentials

import (
	"fmt"
	"strings"

	"github.com/emprops/cloudstore/pkg/provider"
)

// Canonical variable names recognized by the resolver.
const (
	EnvCloudProvider    = "CLOUD_PROVIDER"
	EnvStorageTestMode  = "STORAGE_TEST_MODE"
	EnvTestContainer    = "CLOUD_STORAGE_TEST_CONTAINER"
	EnvAWSAccessKeyID   = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey     = "AWS_SECRET_ACCESS_KEY"
	EnvAWSRegion        = "AWS_DEFAULT_REGION"
	EnvS3Bucket         = "S3_BUCKET_NAME"
	EnvGoogleCredsFile  = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvAzureAccount     = "AZURE_STORAGE_ACCOUNT"
	EnvAzureKey         = "AZURE_STORAGE_KEY"
	EnvCloudContainer   = "CLOUD_STORAGE_CONTAINER"
	EnvAzureContainer   = "AZURE_STORAGE_CONTAINER"
)

// DefaultRegion is applied when no region is found in any source.
const DefaultRegion = "us-east-1"

// DefaultBucket is the bucket/container used when no override is configured.
const DefaultBucket = "emprops-share"

// encodedSuffix marks the obfuscated variant of a secret variable.
const encodedSuffix = "_ENCODED"

// Credentials is the fully resolved secret material for one provider.
// Resolved once at client construction and never mutated afterward; safe for
// concurrent reads.
type Credentials struct {
	Provider provider.Kind

	S3    *S3Credentials
	GCS   *GCSCredentials
	Azure *AzureCredentials
}

// S3Credentials holds the access key pair and region for S3.
type S3Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// GCSCredentials references a service-account key file. An empty path means
// ambient application default credentials.
type GCSCredentials struct {
	CredentialsFile string
}

// AzureCredentials holds the shared-key triple for Azure Blob Storage.
// Container may be empty; the client applies the configured default.
type AzureCredentials struct {
	AccountName string
	AccountKey  string
	Container   string
}

// MissingError reports every required variable absent after full resolution.
type MissingError struct {
	Provider provider.Kind
	Vars     []string
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required %s environment variables: %s",
		e.Provider, strings.Join(e.Vars, ", "))
}
