package cli

import (
	"context"
	"fmt"

	"github.com/lrn-oss/lrc/internal/store"
)

// AddImage uploads the image file to the resource
func AddImage(ctx context.Context, api store.API, resourceID int64, filename, caption string) error {
	u, closeFn, err := openUpload(filename)
	if err != nil {
		return err
	}
	defer closeFn()

	s := newSession(api)
	defer s.Close()
	img, err := s.store.AddImage(ctx, resourceID, *u, caption)
	if err != nil {
		return err
	}
	fmt.Printf("Added image %d to resource %d\n", img.ID, resourceID)
	return nil
}

func DeleteImage(ctx context.Context, api store.API, resourceID, imageID int64) error {
	s := newSession(api)
	defer s.Close()
	if err := s.store.RemoveImage(ctx, resourceID, imageID); err != nil {
		return err
	}
	fmt.Printf("Deleted image %d\n", imageID)
	return nil
}
