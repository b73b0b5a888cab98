package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/lrn-oss/lrc/internal/model"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidKey   = errors.New("invalid blob key")
)

// BlobInfo describes a stored blob
type BlobInfo struct {
	Key         string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// BlobStore stores file contents under slash-separated keys
type BlobStore interface {
	// Put stores content under key. If key is already taken, a unique key is derived from it. Returns the key
	// under which the content has been stored
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)
	// Open returns the content stored under key. The returned reader is an io.ReadSeeker when the store supports it
	Open(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error)
	// Delete removes the content stored under key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// ResourceFileKey returns the key under which the attachment of a resource is stored
func ResourceFileKey(resourceID int64, filename string) string {
	return path.Join("resources", model.FormatId(resourceID), "files", CleanFilename(filename))
}

// ImageKey returns the key under which an image of a resource is stored
func ImageKey(resourceID int64, filename string) string {
	return path.Join("resources", model.FormatId(resourceID), "images", CleanFilename(filename))
}

// CleanFilename reduces a client-provided filename to a safe base name. Spaces become underscores and all characters
// other than letters, digits, '-', '_' and '.' are dropped
func CleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '-' || r == '_' || r == '.':
			return r
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, name)
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

// alternativeKey inserts suffix between the name and the extension of the last segment of key
func alternativeKey(key, suffix string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_" + suffix + ext
}
