package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/store"
)

var ErrNothingToUpdate = errors.New("nothing to update")

type ResourceFlags struct {
	Title       string
	Description string
	Tags        string

	// TitleSet, DescriptionSet and TagsSet report whether the flag has been given. An update sends only the given fields
	TitleSet       bool
	DescriptionSet bool
	TagsSet        bool
}

func (f ResourceFlags) fields() model.ResourceFields {
	var fields model.ResourceFields
	if f.TitleSet {
		fields.Title = model.StringPtr(f.Title)
	}
	if f.DescriptionSet {
		fields.Description = model.StringPtr(f.Description)
	}
	if f.TagsSet {
		fields.Tags = model.StringPtr(f.Tags)
	}
	return fields
}

// Add creates a new resource. filename is optional and names a file to attach
func Add(ctx context.Context, api store.API, flags ResourceFlags, filename string) error {
	fields := flags.fields()
	fields.Title = model.StringPtr(flags.Title)

	var upload *model.Upload
	if filename != "" {
		u, closeFn, err := openUpload(filename)
		if err != nil {
			return err
		}
		defer closeFn()
		upload = u
	}

	s := newSession(api)
	defer s.Close()
	res, err := s.store.Add(ctx, fields, upload)
	if err != nil {
		return err
	}
	fmt.Printf("Created resource %d: %s\n", res.ID, res.Title)
	return nil
}

// Update modifies the given fields of a resource. If filename is not empty, the attached file is replaced.
// clearFile requests removal of the attached file, which the catalog does not support
func Update(ctx context.Context, api store.API, id int64, flags ResourceFlags, filename string, clearFile bool) error {
	fields := flags.fields()
	change := model.KeepFile()
	switch {
	case clearFile && filename != "":
		Stderrf("Cannot replace and remove the file at the same time")
		return errors.New("conflicting file options")
	case clearFile:
		change = model.ClearFile()
	case filename != "":
		u, closeFn, err := openUpload(filename)
		if err != nil {
			return err
		}
		defer closeFn()
		change = model.ReplaceFile(*u)
	}
	if fields.IsEmpty() && change.Kind == model.FileUnset {
		Stderrf("Nothing to update. Use at least one of --title, --description, --tags or --file")
		return ErrNothingToUpdate
	}

	s := newSession(api)
	defer s.Close()
	res, err := s.store.Update(ctx, id, fields, change)
	if err != nil {
		return err
	}
	fmt.Printf("Updated resource %d: %s\n", res.ID, res.Title)
	return nil
}

// Delete removes a resource together with its images
func Delete(ctx context.Context, api store.API, id int64) error {
	s := newSession(api)
	defer s.Close()
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted resource %d\n", id)
	return nil
}
