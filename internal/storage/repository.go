package storage

import (
	"context"
	"errors"
	"slices"

	"github.com/lrn-oss/lrc/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var updatableColumns = []string{"title", "description", "resource_file", "tags"}

// ResourceRepo reads and writes resource and image metadata
type ResourceRepo struct {
	db *gorm.DB
}

func (r *ResourceRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable
func (r *ResourceRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func withImages(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

// List returns all resources, newest first
func (r *ResourceRepo) List(ctx context.Context) ([]Resource, error) {
	res := []Resource{}
	err := withImages(r.db.WithContext(ctx)).Order("created_at desc, id desc").Find(&res).Error
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResourceRepo) Get(ctx context.Context, id int64) (Resource, error) {
	return getResource(withImages(r.db.WithContext(ctx)), id)
}

func getResource(db *gorm.DB, id int64) (Resource, error) {
	var res Resource
	err := db.First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Resource{}, model.ErrResourceNotFound
	}
	return res, err
}

// Create inserts res and sets its id and timestamps. Images of res are ignored
func (r *ResourceRepo) Create(ctx context.Context, res *Resource) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
}

// Update writes the updatable fields of res and returns the stored resource
func (r *ResourceRepo) Update(ctx context.Context, res Resource) (Resource, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&Resource{ID: res.ID}).Select(updatableColumns).Updates(&res)
	if result.Error != nil {
		return Resource{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Resource{}, model.ErrResourceNotFound
	}
	return getResource(withImages(db), res.ID)
}

// Delete removes the resource with all its images and returns what has been removed
func (r *ResourceRepo) Delete(ctx context.Context, id int64) (Resource, error) {
	var deleted Resource
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := getResource(withImages(tx), id)
		if err != nil {
			return err
		}
		if err := tx.Where("resource_id = ?", id).Delete(&Image{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Resource{}, id).Error; err != nil {
			return err
		}
		deleted = res
		return nil
	})
	return deleted, err
}

// CreateImage inserts img and sets its id and upload time. Fails with model.ErrResourceNotFound if the
// resource referenced by img does not exist
func (r *ResourceRepo) CreateImage(ctx context.Context, img *Image) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getResource(tx, img.ResourceID); err != nil {
			return err
		}
		return tx.Create(img).Error
	})
}

func (r *ResourceRepo) GetImage(ctx context.Context, id int64) (Image, error) {
	var img Image
	err := r.db.WithContext(ctx).First(&img, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Image{}, model.ErrImageNotFound
	}
	return img, err
}

// DeleteImage removes an image and returns what has been removed
func (r *ResourceRepo) DeleteImage(ctx context.Context, id int64) (Image, error) {
	var deleted Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var img Image
		err := tx.First(&img, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrImageNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&Image{}, id).Error; err != nil {
			return err
		}
		deleted = img
		return nil
	})
	return deleted, err
}

// Tags returns all distinct tags of all resources, sorted
func (r *ResourceRepo) Tags(ctx context.Context) ([]string, error) {
	var raw []string
	err := r.db.WithContext(ctx).Model(&Resource{}).Pluck("tags", &raw).Error
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	res := []string{}
	for _, t := range raw {
		for _, tag := range model.ParseTags(t) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				res = append(res, tag)
			}
		}
	}
	slices.Sort(res)
	return res, nil
}
