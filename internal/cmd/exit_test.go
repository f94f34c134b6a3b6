package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	underlying := errors.New("no files matched frames/*.png")
	err := exitError(foundry.ExitInvalidArgument, "No files matched", underlying)

	assert.Equal(t, "No files matched: no files matched frames/*.png", err.Error())
	assert.True(t, errors.Is(err, underlying))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name:     "invalid argument",
			err:      exitError(foundry.ExitInvalidArgument, "Invalid glob", errors.New("bad pattern")),
			expected: foundry.ExitInvalidArgument,
		},
		{
			name:     "service unavailable",
			err:      exitError(foundry.ExitExternalServiceUnavailable, "Upload incomplete", errors.New("1 of 2 uploads failed")),
			expected: foundry.ExitExternalServiceUnavailable,
		},
		{
			name:     "wrapped coded error",
			err:      fmt.Errorf("command failed: %w", exitError(foundry.ExitFileNotFound, "Object not visible", nil)),
			expected: foundry.ExitFileNotFound,
		},
		{
			name:     "uncoded error",
			err:      errors.New("something broke"),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

func TestWriteProbeFile(t *testing.T) {
	path, err := writeProbeFile()
	require.NoError(t, err)
	defer os.Remove(path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cloudstore connectivity probe\n", string(content))

	// The probe is a plain temp file; removing it leaves nothing behind.
	assert.Equal(t, filepath.Clean(os.TempDir()), filepath.Dir(path))
	require.NoError(t, os.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
