package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Lookup(t *testing.T) {
	chain := Chain{
		Source{"A": "env-a", "EMPTY": ""},
		Source{"A": "file-a", "B": "file-b", "EMPTY": "file-empty"},
	}

	t.Run("earlier source wins", func(t *testing.T) {
		assert.Equal(t, "env-a", chain.Lookup("A"))
	})

	t.Run("falls through empty values", func(t *testing.T) {
		assert.Equal(t, "file-empty", chain.Lookup("EMPTY"))
	})

	t.Run("later source supplies missing", func(t *testing.T) {
		assert.Equal(t, "file-b", chain.Lookup("B"))
	})

	t.Run("absent everywhere", func(t *testing.T) {
		assert.Equal(t, "", chain.Lookup("C"))
	})
}

func TestChain_LookupSecret(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		expected string
	}{
		{
			name: "plain wins over encoded in same source",
			chain: Chain{
				Source{"SECRET": "plain", "SECRET_ENCODED": "ZW5jb2RlZA=="},
			},
			expected: "plain",
		},
		{
			name: "encoded used when plain absent",
			chain: Chain{
				Source{"SECRET_ENCODED": "a_SLASH_b"},
			},
			expected: "a/b",
		},
		{
			name: "env encoded beats file plain",
			chain: Chain{
				Source{"SECRET_ENCODED": "ZnJvbS1lbnY="},
				Source{"SECRET": "from-file"},
			},
			expected: "from-env",
		},
		{
			name: "file supplies when env empty",
			chain: Chain{
				Source{},
				Source{"SECRET": "from-file"},
			},
			expected: "from-file",
		},
		{
			name:     "absent everywhere",
			chain:    Chain{Source{}, Source{}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.chain.LookupSecret("SECRET"))
		})
	}
}

func TestChain_LookupAny(t *testing.T) {
	chain := Chain{
		Source{"SPECIFIC": "env-specific"},
		Source{"AGNOSTIC": "file-agnostic", "SPECIFIC": "file-specific"},
	}

	t.Run("source order beats name order", func(t *testing.T) {
		// The env source has only the specific name, so it wins even though
		// the agnostic alias is listed first.
		assert.Equal(t, "env-specific", chain.LookupAny("AGNOSTIC", "SPECIFIC"))
	})

	t.Run("agnostic alias wins within one source", func(t *testing.T) {
		fileOnly := Chain{chain[1]}
		assert.Equal(t, "file-agnostic", fileOnly.LookupAny("AGNOSTIC", "SPECIFIC"))
	})
}

func TestFileSource(t *testing.T) {
	t.Run("missing file yields empty source", func(t *testing.T) {
		src, err := FileSource(filepath.Join(t.TempDir(), ".env"))
		require.NoError(t, err)
		assert.Empty(t, src)
	})

	t.Run("reads dotenv values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("AWS_ACCESS_KEY_ID=AKIA123\nAWS_DEFAULT_REGION=eu-west-1\n"), 0o600))

		src, err := FileSource(path)
		require.NoError(t, err)
		assert.Equal(t, "AKIA123", src["AWS_ACCESS_KEY_ID"])
		assert.Equal(t, "eu-west-1", src["AWS_DEFAULT_REGION"])
	})
}

func TestEnvSource(t *testing.T) {
	t.Setenv("CLOUDSTORE_SOURCE_TEST", "present")

	src := EnvSource()
	assert.Equal(t, "present", src["CLOUDSTORE_SOURCE_TEST"])
}

func TestDefaultChain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FROM_ENV_FILE=primary\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("FROM_ENV_FILE=secondary\nONLY_LOCAL=yes\n"), 0o600))

	chain := DefaultChain(dir)
	require.Len(t, chain, 3)

	// Primary override file wins over the secondary one.
	assert.Equal(t, "primary", chain.Lookup("FROM_ENV_FILE"))
	assert.Equal(t, "yes", chain.Lookup("ONLY_LOCAL"))
}
