package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprops/cloudstore/pkg/provider"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := New(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return a
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{}.Validate())
	assert.Error(t, Config{BaseDir: "  "}.Validate())
	assert.NoError(t, Config{BaseDir: "/tmp/objects"}.Validate())
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)
	src := writeTemp(t, "clip.mp4", "not really a video")

	require.NoError(t, a.Put(ctx, "renders/2024/clip.mp4", src, "video/mp4"))

	ok, err := a.Exists(ctx, "renders/2024/clip.mp4")
	require.NoError(t, err)
	assert.True(t, ok)

	dst := filepath.Join(t.TempDir(), "fetched.mp4")
	require.NoError(t, a.Get(ctx, "renders/2024/clip.mp4", dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "not really a video", string(content))
}

func TestAdapter_ExistsNegative(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	// Absence is a normal negative result, not an error.
	ok, err := a.Exists(ctx, "never/written.bin")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_ExistsDirectoryIsNotObject(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)
	src := writeTemp(t, "a.txt", "x")

	require.NoError(t, a.Put(ctx, "dir/a.txt", src, "text/plain"))

	ok, err := a.Exists(ctx, "dir")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_GetMissing(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	err := a.Get(ctx, "missing.bin", filepath.Join(t.TempDir(), "out.bin"))
	require.Error(t, err)
	assert.True(t, provider.IsNotFound(err))
}

func TestAdapter_Delete(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)
	src := writeTemp(t, "a.txt", "x")

	require.NoError(t, a.Put(ctx, "a.txt", src, "text/plain"))
	require.NoError(t, a.Delete(ctx, "a.txt"))

	ok, err := a.Exists(ctx, "a.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing object is not an error.
	assert.NoError(t, a.Delete(ctx, "a.txt"))
}

func TestAdapter_KeysConfinedToBaseDir(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)
	src := writeTemp(t, "a.txt", "x")

	// Traversal segments are stripped, so the object lands inside the base
	// directory instead of escaping it.
	require.NoError(t, a.Put(ctx, "../../escape.txt", src, "text/plain"))

	ok, err := a.Exists(ctx, "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	outside := filepath.Join(filepath.Dir(a.Bucket()), "escape.txt")
	_, err = os.Stat(outside)
	assert.True(t, os.IsNotExist(err))
}

func TestAdapter_URL(t *testing.T) {
	a, err := New(Config{BaseDir: "/data/objects"})
	require.NoError(t, err)
	assert.Equal(t, "file:///data/objects/renders/clip.mp4", a.URL("renders/clip.mp4"))
}

func TestAdapter_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	a := newTestAdapter(t)

	first := writeTemp(t, "v1.txt", "first")
	second := writeTemp(t, "v2.txt", "second")

	require.NoError(t, a.Put(ctx, "doc.txt", first, "text/plain"))
	require.NoError(t, a.Put(ctx, "doc.txt", second, "text/plain"))

	dst := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, a.Get(ctx, "doc.txt", dst))

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}
