// Package file implements the storage adapter for a local directory.
//
// Keys are treated as relative paths under BaseDir. The adapter exists for
// offline dry runs and for exercising client logic in tests without a cloud
// backend.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/emprops/cloudstore/pkg/provider"
)

// Config configures a file adapter.
type Config struct {
	// BaseDir is the directory acting as the bucket root (required).
	BaseDir string
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseDir) == "" {
		return fmt.Errorf("file config: BaseDir: base dir is required")
	}
	return nil
}

// Adapter implements provider.Adapter for local filesystem paths.
type Adapter struct {
	baseDir string
}

// Ensure Adapter implements the interfaces.
var (
	_ provider.Adapter       = (*Adapter)(nil)
	_ provider.ObjectDeleter = (*Adapter)(nil)
)

// New creates a file adapter rooted at cfg.BaseDir.
func New(cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Adapter{baseDir: filepath.Clean(cfg.BaseDir)}, nil
}

// Bucket returns the base directory acting as the bucket name.
func (a *Adapter) Bucket() string {
	return a.baseDir
}

// URL returns a file URL for key.
func (a *Adapter) URL(key string) string {
	return fmt.Sprintf("file://%s/%s", filepath.ToSlash(a.baseDir), key)
}

// Put copies the file at localPath under key. The write goes through a temp
// file and rename so a concurrent reader never observes a partial object.
func (a *Adapter) Put(ctx context.Context, key, localPath, contentType string) error {
	_ = ctx
	_ = contentType // no metadata store for local objects

	src, err := os.Open(localPath)
	if err != nil {
		return a.wrapError("Put", key, err)
	}
	defer src.Close()

	full, err := a.fullPath(key)
	if err != nil {
		return a.wrapError("Put", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return a.wrapError("Put", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), "cloudstore-put-*")
	if err != nil {
		return a.wrapError("Put", key, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return a.wrapError("Put", key, err)
	}
	if err := tmp.Close(); err != nil {
		return a.wrapError("Put", key, err)
	}

	if err := os.Rename(tmpName, full); err != nil {
		return a.wrapError("Put", key, err)
	}
	return nil
}

// Get copies the object at key to localPath.
func (a *Adapter) Get(ctx context.Context, key, localPath string) error {
	_ = ctx
	full, err := a.fullPath(key)
	if err != nil {
		return a.wrapError("Get", key, err)
	}

	src, err := os.Open(full)
	if err != nil {
		return a.wrapError("Get", key, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return a.wrapError("Get", key, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return a.wrapError("Get", key, err)
	}
	if err := dst.Close(); err != nil {
		return a.wrapError("Get", key, err)
	}
	return nil
}

// Exists reports whether a regular file is present at key.
func (a *Adapter) Exists(ctx context.Context, key string) (bool, error) {
	_ = ctx
	full, err := a.fullPath(key)
	if err != nil {
		return false, a.wrapError("Exists", key, err)
	}

	st, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, a.wrapError("Exists", key, err)
	}
	return !st.IsDir(), nil
}

// Delete removes the object at key. Missing objects are not an error.
func (a *Adapter) Delete(ctx context.Context, key string) error {
	_ = ctx
	full, err := a.fullPath(key)
	if err != nil {
		return a.wrapError("Delete", key, err)
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return a.wrapError("Delete", key, err)
	}
	return nil
}

// Close releases any resources held by the adapter.
func (a *Adapter) Close() error { return nil }

func (a *Adapter) fullPath(key string) (string, error) {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "/")
	// Prevent path traversal.
	clean := filepath.Clean("/" + key)
	clean = strings.TrimPrefix(clean, "/")
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid key path")
	}
	return filepath.Join(a.baseDir, filepath.FromSlash(clean)), nil
}

func (a *Adapter) wrapError(op, key string, err error) error {
	wrapped := &provider.AdapterError{Op: op, Provider: "file", Key: key, Err: err}
	if err == nil {
		wrapped.Err = fmt.Errorf("unknown error")
	}
	// Normalize common filesystem errors to sentinels.
	if os.IsNotExist(err) {
		wrapped.Err = provider.ErrNotFound
	}
	return wrapped
}
