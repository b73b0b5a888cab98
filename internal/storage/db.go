// Package storage persists learning resources and their images on the server side.
// Metadata is kept in SQLite through gorm, file contents in a BlobStore.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultDirPermissions  = 0775
	defaultFilePermissions = 0664
	DBFilename             = "lrc.db"
)

// Resource is the stored form of a learning resource. ResourceFile holds the blob key of the attachment, if any
type Resource struct {
	ID           int64   `gorm:"primaryKey"`
	Title        string  `gorm:"size:200;not null"`
	Description  *string `gorm:"type:text"`
	ResourceFile string  `gorm:"size:255"`
	Tags         string  `gorm:"size:255"`
	Images       []Image `gorm:"foreignKey:ResourceID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Resource) TableName() string {
	return "resources"
}

// Image is the stored form of an image. Image holds the blob key of the image content
type Image struct {
	ID         int64     `gorm:"primaryKey"`
	ResourceID int64     `gorm:"index;not null"`
	Image      string    `gorm:"size:255;not null"`
	Caption    string    `gorm:"size:255"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (Image) TableName() string {
	return "resource_images"
}

// Open opens or creates the SQLite database at path and migrates its schema.
// now is used for all timestamps written to the database. If now is nil, time.Now is used.
func Open(path string, now func() time.Time) (*ResourceRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), defaultDirPermissions); err != nil {
		return nil, fmt.Errorf("could not create directory for database %s: %w", path, err)
	}
	if now == nil {
		now = time.Now
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return now().UTC() },
		Logger: logger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database %s: %w", path, err)
	}
	slog.Default().Debug("opened database", "path", path)
	return &ResourceRepo{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Resource{}, &Image{})
}
