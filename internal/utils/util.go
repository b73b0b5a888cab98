package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var LrcVersion = "n/a"

func GetLrcVersion() string {
	v, err := semver.NewVersion(LrcVersion)
	if err != nil {
		return LrcVersion
	}
	return strings.TrimPrefix(v.Original(), "v")
}

// ExpandHome expands ~ in path with user's home directory, but only if path begins with ~ or /~
// Otherwise, returns path unchanged
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") && !strings.HasPrefix(path, "/~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand user home directory: %w", err)
	}
	_, rest, found := strings.Cut(path, "~")
	if !found {
		panic(errors.New("should have checked for ~ before"))
	}
	return filepath.Join(home, rest), nil
}

// AtomicWriteFile writes data to the named file quasi-atomically, creating it if necessary.
// On unix-like systems, the function uses github.com/google/renameio.
// On Windows, it has a simpler implementation using os.Rename(), which is believed to be atomic on NTFS,
// but there is no hard guarantee from Microsoft on that.
func AtomicWriteFile(name string, data []byte, perm os.FileMode) error {
	return atomicWriteFile(name, data, perm)
}

func ParseAsList(list, separator string, trim bool) []string {
	ret := make([]string, 0)

	for _, entry := range strings.Split(list, separator) {
		if trim {
			entry = strings.TrimSpace(entry)
		}
		if entry != "" {
			ret = append(ret, entry)
		}
	}
	return ret
}

// DetectMediaType detects the media type of the content. The type provided by the caller always takes precedence over
// automatic detection, unless it is empty. The type is detected by http.DetectContentType. If that returns the
// generic 'application/octet-stream', then the type is guessed from the filename extension.
// If all of the above fails, it returns 'application/octet-stream'
func DetectMediaType(givenType string, filename string, head []byte) string {
	const mediaOctetStream = "application/octet-stream"
	if givenType != "" {
		return givenType
	}

	if len(head) > 0 {
		if len(head) > 512 {
			head = head[:512]
		}
		ct := http.DetectContentType(head)
		if ct != mediaOctetStream && !strings.HasPrefix(ct, "text/plain") {
			return ct
		}
	}

	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct != "" {
		return ct
	}
	if len(head) > 0 && strings.HasPrefix(http.DetectContentType(head), "text/plain") {
		return http.DetectContentType(head)
	}
	return mediaOctetStream
}

// PeekReader reads up to n bytes from r and returns them together with a reader that still yields the full content
func PeekReader(r io.Reader, n int) ([]byte, io.Reader, error) {
	head := make([]byte, n)
	read, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, nil, err
	}
	head = head[:read]
	return head, io.MultiReader(bytes.NewReader(head), r), nil
}

type ctxKey string

const CtxKeyLogger ctxKey = "logger"

// GetLogger returns the logger that is valid in the context
// If component is not empty, the logger is extended with the field "where" having that value.
func GetLogger(ctx context.Context, component string) *slog.Logger {
	cv := ctx.Value(CtxKeyLogger)
	l, ok := cv.(*slog.Logger)
	if !ok || l == nil {
		l = slog.Default()
	}
	if component != "" {
		l = l.With("where", component)
	}
	return l
}

// WithLogger returns a copy of ctx carrying the given logger
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, CtxKeyLogger, l)
}
