package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"path/filepath"
	"time"

	"github.com/lrn-oss/lrc/internal/app/http"
	"github.com/lrn-oss/lrc/internal/app/http/cors"
	"github.com/lrn-oss/lrc/internal/config"
	"github.com/lrn-oss/lrc/internal/storage"
	"github.com/lrn-oss/lrc/internal/utils"
)

const (
	mediaDir        = "media"
	shutdownTimeout = 10 * time.Second
)

type ServeOptions struct {
	DataDir        string
	UrlContextRoot string
	BasePath       string
	CORS           cors.CORSOptions
	// Blobs stores uploaded files. Defaults to a directory within DataDir
	Blobs storage.BlobStore
}

// Serve runs the catalog server until ctx is cancelled
func Serve(ctx context.Context, host, port string, opts ServeOptions) error {
	log := utils.GetLogger(ctx, "serve")

	unlock, err := storage.LockDir(opts.DataDir)
	if err != nil {
		Stderrf("Could not use data directory %s: %v", opts.DataDir, err)
		return err
	}
	defer unlock()

	repo, err := storage.Open(filepath.Join(opts.DataDir, storage.DBFilename), nil)
	if err != nil {
		Stderrf("Could not open database: %v", err)
		return err
	}
	defer repo.Close()

	blobs := opts.Blobs
	if blobs == nil {
		blobs, err = storage.NewFileBlobStore(filepath.Join(opts.DataDir, mediaDir))
		if err != nil {
			Stderrf("Could not open media directory: %v", err)
			return err
		}
	}

	svc, err := http.NewDefaultHandlerService(repo, blobs)
	if err != nil {
		Stderrf("Could not start catalog server on %s:%s: %v", host, port, err)
		return err
	}
	basePath := opts.BasePath
	if basePath == "" {
		basePath = http.DefaultBasePath
	}
	handler := http.NewLrcHandler(svc, http.LrcHandlerOptions{UrlContextRoot: opts.UrlContextRoot})
	h := http.NewHttpHandler(handler, basePath, http.LoggingMiddleware)
	h = cors.Protect(h, opts.CORS)

	s := &nethttp.Server{
		Handler:           h,
		Addr:              net.JoinHostPort(host, port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe()
	}()
	fmt.Printf("Start learning resources catalog server on %s:%s\n", host, port)
	log.Info("server started", "addr", s.Addr, "dataDir", opts.DataDir, "basePath", basePath)

	select {
	case err := <-errCh:
		Stderrf("Could not start catalog server on %s:%s: %v", host, port, err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}

// NewBlobStore creates the blob store of the given kind. An empty kind selects the file system
func NewBlobStore(ctx context.Context, kind, dataDir string, s3cfg storage.S3Config) (storage.BlobStore, error) {
	switch kind {
	case "", config.StorageFile:
		return storage.NewFileBlobStore(filepath.Join(dataDir, mediaDir))
	case config.StorageS3:
		return storage.NewS3BlobStore(ctx, s3cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type %q. Use one of [%s, %s]", kind, config.StorageFile, config.StorageS3)
	}
}
