package gcs

import (
	"errors"
	"testing"

	gcstorage "cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/emprops/cloudstore/pkg/provider"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("empty bucket", func(t *testing.T) {
		cfg := Config{}
		require.Error(t, cfg.Validate())
	})

	t.Run("bucket only", func(t *testing.T) {
		cfg := Config{Bucket: "emprops-share"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bucket with credentials file", func(t *testing.T) {
		cfg := Config{Bucket: "emprops-share", CredentialsFile: "/etc/gcp/sa.json"}
		assert.NoError(t, cfg.Validate())
	})
}

func TestAdapter_URL(t *testing.T) {
	a := &Adapter{bucket: "emprops-share"}
	assert.Equal(t,
		"https://storage.googleapis.com/emprops-share/renders/2024/clip.mp4",
		a.URL("renders/2024/clip.mp4"))
}

func TestWrapError(t *testing.T) {
	a := &Adapter{bucket: "test-bucket"}

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"object not exist", gcstorage.ErrObjectNotExist, provider.ErrNotFound},
		{"bucket not exist", gcstorage.ErrBucketNotExist, provider.ErrBucketNotFound},
		{"api 404", &googleapi.Error{Code: 404}, provider.ErrNotFound},
		{"api 401", &googleapi.Error{Code: 401}, provider.ErrInvalidCredentials},
		{"api 403", &googleapi.Error{Code: 403}, provider.ErrAccessDenied},
		{"api 503", &googleapi.Error{Code: 503}, provider.ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.wrapError("Test", "key", tt.err)

			var adapterErr *provider.AdapterError
			require.True(t, errors.As(err, &adapterErr))
			assert.Equal(t, provider.KindGCS, adapterErr.Provider)
			assert.True(t, errors.Is(err, tt.expected))
		})
	}

	t.Run("unmapped error passes through", func(t *testing.T) {
		underlying := errors.New("connection reset")
		err := a.wrapError("Put", "key", underlying)
		assert.True(t, errors.Is(err, underlying))
	})
}

func TestAdapter_InterfaceCompliance(t *testing.T) {
	var _ provider.Adapter = (*Adapter)(nil)
	var _ provider.ObjectDeleter = (*Adapter)(nil)
}
