package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/lrn-oss/lrc/internal/utils"
)

const lockFilename = ".lock"

var (
	ErrDataDirLocked = errors.New("data directory is in use by another process")
	ErrRootInvalid   = errors.New("root is not a directory")
)

// FileBlobStore implements BlobStore on a directory of the local file system
type FileBlobStore struct {
	root string
}

func NewFileBlobStore(root string) (*FileBlobStore, error) {
	root, err := utils.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, defaultDirPermissions); err != nil {
		return nil, fmt.Errorf("could not create media directory %s: %w", root, err)
	}
	stat, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, ErrRootInvalid
	}
	return &FileBlobStore{root: root}, nil
}

func (f *FileBlobStore) Root() string {
	return f.root
}

func (f *FileBlobStore) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	fullPath, err := f.filename(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), defaultDirPermissions); err != nil {
		return "", fmt.Errorf("could not create directory for %s: %w", key, err)
	}
	for f.exists(fullPath) {
		key = alternativeKey(key, uuid.NewString()[:8])
		fullPath, _ = f.filename(key)
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	if err := utils.AtomicWriteFile(fullPath, data, defaultFilePermissions); err != nil {
		return "", fmt.Errorf("could not write %s: %w", key, err)
	}
	utils.GetLogger(ctx, "FileBlobStore").Debug("saved file", "key", key, "size", len(data))
	return key, nil
}

func (f *FileBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error) {
	fullPath, err := f.filename(key)
	if err != nil {
		return nil, BlobInfo{}, err
	}
	file, err := os.Open(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, BlobInfo{}, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	if err != nil {
		return nil, BlobInfo{}, err
	}
	stat, err := file.Stat()
	if err == nil && stat.IsDir() {
		err = fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	if err != nil {
		_ = file.Close()
		return nil, BlobInfo{}, err
	}
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, BlobInfo{}, err
	}
	return file, BlobInfo{
		Key:         key,
		ContentType: utils.DetectMediaType("", fullPath, head[:n]),
		Size:        stat.Size(),
		ModTime:     stat.ModTime(),
	}, nil
}

func (f *FileBlobStore) Delete(ctx context.Context, key string) error {
	fullPath, err := f.filename(key)
	if err != nil {
		return err
	}
	err = os.Remove(fullPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	_ = rmEmptyDirs(filepath.Dir(fullPath), f.root)
	utils.GetLogger(ctx, "FileBlobStore").Debug("deleted file", "key", key)
	return nil
}

func (f *FileBlobStore) filename(key string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return filepath.Join(f.root, filepath.FromSlash(key)), nil
}

func (f *FileBlobStore) exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func rmEmptyDirs(from string, upTo string) error {
	from, errF := filepath.Abs(from)
	upTo, errU := filepath.Abs(upTo)
	if errF != nil {
		slog.Default().Error("from path cannot be converted to absolute path", "error", errF)
		return errF
	} else if errU != nil {
		slog.Default().Error("upTo path cannot be converted to absolute path", "error", errU)
		return errU
	} else if !strings.HasPrefix(from, upTo) {
		err := errors.New("from path is not below upTo")
		slog.Default().Error("error removing empty dirs", "error", err)
		return err
	}

	for len(from) > len(upTo) {
		entries, err := os.ReadDir(from)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return nil
		}
		if err := os.Remove(from); err != nil {
			return err
		}
		from = filepath.Dir(from)
	}
	return nil
}

// LockDir takes an exclusive lock on dir, so that no two servers share the same data directory
func LockDir(dir string) (unlock func(), err error) {
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return func() {}, err
	}
	fl := flock.New(filepath.Join(dir, lockFilename))
	locked, err := fl.TryLock()
	if err != nil {
		return func() {}, err
	}
	if !locked {
		return func() {}, fmt.Errorf("%w: %s", ErrDataDirLocked, dir)
	}
	return func() { _ = fl.Unlock() }, nil
}
