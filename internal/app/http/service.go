package http

import (
	"context"
	"errors"
	"io"

	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/storage"
	"github.com/lrn-oss/lrc/internal/utils"
)

//go:generate mockery --name HandlerService --outpkg mocks --output mocks
type HandlerService interface {
	ListResources(ctx context.Context) ([]storage.Resource, error)
	GetResource(ctx context.Context, id int64) (storage.Resource, error)
	CreateResource(ctx context.Context, fields model.ResourceFields, file *model.Upload) (storage.Resource, error)
	UpdateResource(ctx context.Context, id int64, fields model.ResourceFields, file *model.Upload) (storage.Resource, error)
	DeleteResource(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, resourceID int64, img model.Upload, caption string) (storage.Image, error)
	DeleteImage(ctx context.Context, id int64) error
	ListTags(ctx context.Context) ([]string, error)
	FetchMedia(ctx context.Context, key string) (io.ReadCloser, storage.BlobInfo, error)
	CheckHealth(ctx context.Context) error
}

type defaultHandlerService struct {
	repo  *storage.ResourceRepo
	blobs storage.BlobStore
}

func NewDefaultHandlerService(repo *storage.ResourceRepo, blobs storage.BlobStore) (*defaultHandlerService, error) {
	if repo == nil || blobs == nil {
		return nil, errors.New("resource repository and blob store must be set")
	}
	dhs := &defaultHandlerService{
		repo:  repo,
		blobs: blobs,
	}
	return dhs, nil
}

func (dhs *defaultHandlerService) ListResources(ctx context.Context) ([]storage.Resource, error) {
	return dhs.repo.List(ctx)
}

func (dhs *defaultHandlerService) GetResource(ctx context.Context, id int64) (storage.Resource, error) {
	return dhs.repo.Get(ctx, id)
}

// CreateResource stores a new resource. The attachment, if any, is stored after the record because its key
// depends on the assigned id. If storing the attachment fails, the record is removed again
func (dhs *defaultHandlerService) CreateResource(ctx context.Context, fields model.ResourceFields, file *model.Upload) (storage.Resource, error) {
	res := storage.Resource{}
	applyFields(&res, fields)
	if err := dhs.repo.Create(ctx, &res); err != nil {
		return storage.Resource{}, err
	}
	if file == nil {
		return dhs.repo.Get(ctx, res.ID)
	}

	key, err := dhs.blobs.Put(ctx, storage.ResourceFileKey(res.ID, file.Name), file.Content, file.ContentType)
	if err != nil {
		if _, dErr := dhs.repo.Delete(ctx, res.ID); dErr != nil {
			utils.GetLogger(ctx, "service").Error("could not roll back resource creation", "id", res.ID, "error", dErr)
		}
		return storage.Resource{}, err
	}
	res.ResourceFile = key
	updated, err := dhs.repo.Update(ctx, res)
	if err != nil {
		dhs.deleteBlobs(ctx, key)
		return storage.Resource{}, err
	}
	return updated, nil
}

// UpdateResource writes the non-nil fields to the resource. If file is not nil, it replaces the attachment of the
// resource and the previous attachment is deleted
func (dhs *defaultHandlerService) UpdateResource(ctx context.Context, id int64, fields model.ResourceFields, file *model.Upload) (storage.Resource, error) {
	res, err := dhs.repo.Get(ctx, id)
	if err != nil {
		return storage.Resource{}, err
	}
	applyFields(&res, fields)
	oldKey := res.ResourceFile
	if file != nil {
		key, err := dhs.blobs.Put(ctx, storage.ResourceFileKey(id, file.Name), file.Content, file.ContentType)
		if err != nil {
			return storage.Resource{}, err
		}
		res.ResourceFile = key
	}

	updated, err := dhs.repo.Update(ctx, res)
	if err != nil {
		if file != nil {
			dhs.deleteBlobs(ctx, res.ResourceFile)
		}
		return storage.Resource{}, err
	}
	if file != nil && oldKey != "" && oldKey != updated.ResourceFile {
		dhs.deleteBlobs(ctx, oldKey)
	}
	return updated, nil
}

func (dhs *defaultHandlerService) DeleteResource(ctx context.Context, id int64) error {
	deleted, err := dhs.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	keys := []string{deleted.ResourceFile}
	for _, img := range deleted.Images {
		keys = append(keys, img.Image)
	}
	dhs.deleteBlobs(ctx, keys...)
	return nil
}

func (dhs *defaultHandlerService) UploadImage(ctx context.Context, resourceID int64, img model.Upload, caption string) (storage.Image, error) {
	if _, err := dhs.repo.Get(ctx, resourceID); err != nil {
		return storage.Image{}, err
	}
	key, err := dhs.blobs.Put(ctx, storage.ImageKey(resourceID, img.Name), img.Content, img.ContentType)
	if err != nil {
		return storage.Image{}, err
	}
	stored := storage.Image{
		ResourceID: resourceID,
		Image:      key,
		Caption:    caption,
	}
	if err := dhs.repo.CreateImage(ctx, &stored); err != nil {
		dhs.deleteBlobs(ctx, key)
		return storage.Image{}, err
	}
	return stored, nil
}

func (dhs *defaultHandlerService) DeleteImage(ctx context.Context, id int64) error {
	deleted, err := dhs.repo.DeleteImage(ctx, id)
	if err != nil {
		return err
	}
	dhs.deleteBlobs(ctx, deleted.Image)
	return nil
}

func (dhs *defaultHandlerService) ListTags(ctx context.Context) ([]string, error) {
	return dhs.repo.Tags(ctx)
}

func (dhs *defaultHandlerService) FetchMedia(ctx context.Context, key string) (io.ReadCloser, storage.BlobInfo, error) {
	return dhs.blobs.Open(ctx, key)
}

func (dhs *defaultHandlerService) CheckHealth(ctx context.Context) error {
	if err := dhs.repo.Ping(ctx); err != nil {
		return NewServiceUnavailableError(err)
	}
	return nil
}

// deleteBlobs removes stored files which are no longer referenced. Failures are only logged
func (dhs *defaultHandlerService) deleteBlobs(ctx context.Context, keys ...string) {
	log := utils.GetLogger(ctx, "service")
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := dhs.blobs.Delete(ctx, k); err != nil {
			log.Warn("could not delete stored file", "key", k, "error", err)
		}
	}
}

func applyFields(res *storage.Resource, fields model.ResourceFields) {
	if fields.Title != nil {
		res.Title = *fields.Title
	}
	if fields.Description != nil {
		res.Description = fields.Description
	}
	if fields.Tags != nil {
		res.Tags = model.NormalizeTags(*fields.Tags)
	}
}
