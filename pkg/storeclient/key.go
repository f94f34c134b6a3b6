package storeclient

import (
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
)

// DefaultContentType is used when the extension is not in the MIME table.
const DefaultContentType = "application/octet-stream"

// BuildKey constructs the object key from an optional prefix, a filename and
// an optional positional index.
//
// The prefix is normalized to end with exactly one separator and never to
// start with one; the result contains no double slashes. A non-nil index
// inserts "_<index>" before the filename's extension.
func BuildKey(prefix, filename string, index *int) string {
	filename = strings.TrimLeft(filename, "/")
	if index != nil {
		ext := path.Ext(filename)
		base := strings.TrimSuffix(filename, ext)
		filename = fmt.Sprintf("%s_%d%s", base, *index, ext)
	}

	prefix = strings.Trim(path.Clean("/"+prefix), "/")
	if prefix == "" {
		return filename
	}
	return prefix + "/" + filename
}

// detectContentType infers the MIME type from the file's extension,
// defaulting to the generic binary type when unknown.
func detectContentType(localPath string) string {
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		return ct
	}
	return DefaultContentType
}
