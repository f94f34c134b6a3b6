package provider

import "context"

// Optional adapter capability interfaces.
//
// These are used for feature detection (type assertions). The core Adapter
// interface remains intentionally small.

// ObjectDeleter can delete objects.
//
// Used by connectivity probes to clean up after a write test. Adapters that
// cannot delete simply leave the probe object behind.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}
