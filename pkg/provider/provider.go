// Package provider defines the adapter abstraction for cloud blob storage.
//
// Adapters implement a minimal, uniform surface: put a local file, fetch an
// object back to a local path, and probe for existence. Exactly one adapter
// is active per client; provider selection happens once at construction and
// is never re-branched per call.
package provider

import "context"

// Adapter abstracts a single bucket/container on one storage provider.
//
// Implementations should:
//   - Own exactly one underlying native client for their process lifetime
//   - Be safe for concurrent use after construction
//   - Report absence from Exists as (false, nil), never as an error, so
//     polling callers can distinguish "not yet visible" from "unreachable"
type Adapter interface {
	// Put uploads the file at localPath under key with the given content type.
	Put(ctx context.Context, key, localPath, contentType string) error

	// Get downloads the object at key to localPath, overwriting it.
	// Parent directories of localPath must already exist.
	Get(ctx context.Context, key, localPath string) error

	// Exists probes for the object at key. Absence is a normal negative
	// result; an error means the probe itself could not be completed.
	Exists(ctx context.Context, key string) (bool, error)

	// Bucket returns the resolved bucket/container name.
	Bucket() string

	// URL returns the deterministic public URL for key. No network call is
	// made; the URL is synthesized from the provider's template.
	URL(key string) string

	// Close releases any resources held by the adapter.
	Close() error
}

// Kind identifies a cloud storage provider.
type Kind string

const (
	// KindS3 represents AWS S3.
	KindS3 Kind = "aws"

	// KindGCS represents Google Cloud Storage.
	KindGCS Kind = "google"

	// KindAzure represents Azure Blob Storage.
	KindAzure Kind = "azure"
)

// String returns the string representation of the provider kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind maps a configured provider tag to a Kind.
// Empty or unrecognized values default to S3.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindGCS:
		return KindGCS
	case KindAzure:
		return KindAzure
	default:
		return KindS3
	}
}
