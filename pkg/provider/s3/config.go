// Package s3 implements the storage adapter for AWS S3.
package s3

// Config configures an S3 adapter.
//
// Credentials are expected to be fully resolved before construction (see
// pkg/credentials); the adapter does not walk the SDK default chain on its
// own beyond what LoadDefaultConfig does with explicit static credentials.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string

	// Region is the AWS region. Defaults to us-east-1 when empty.
	Region string

	// AccessKeyID is the access key. If set, SecretAccessKey must also be set.
	AccessKeyID string

	// SecretAccessKey is the secret key. Required if AccessKeyID is set.
	SecretAccessKey string
}

// DefaultRegion is the fallback region when none is configured.
const DefaultRegion = "us-east-1"

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return &ConfigError{Field: "Bucket", Message: "bucket name is required"}
	}

	// If one explicit credential is set, both must be set
	if (c.AccessKeyID != "") != (c.SecretAccessKey != "") {
		return &ConfigError{
			Field:   "AccessKeyID/SecretAccessKey",
			Message: "both access key ID and secret access key must be provided together",
		}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "s3 config: " + e.Field + ": " + e.Message
}
