package model

import (
	"io"
	"strings"
	"time"
)

const TagSeparator = ","

// Resource is a bookmarked learning item as exposed by the catalog API
type Resource struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	ResourceFile    string    `json:"resource_file,omitempty"`
	ResourceFileURL *string   `json:"resource_file_url"`
	Tags            string    `json:"tags"`
	TagsList        []string  `json:"tags_list"`
	Images          []Image   `json:"images"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Image is a picture attached to exactly one Resource
type Image struct {
	ID         int64     `json:"id"`
	Resource   int64     `json:"resource"`
	Image      string    `json:"image,omitempty"`
	ImageURL   *string   `json:"image_url"`
	Caption    string    `json:"caption"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PrimaryImage returns the first image of the resource, which is used as its preview
func (r Resource) PrimaryImage() (Image, bool) {
	if len(r.Images) == 0 {
		return Image{}, false
	}
	return r.Images[0], true
}

// HasTag reports whether tag is one of the derived tags of the resource
func (r Resource) HasTag(tag string) bool {
	for _, t := range r.TagsList {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseTags splits a comma-separated tag string into trimmed, non-empty tags, preserving order
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, TagSeparator) {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeTags returns the canonical stored form of a tag string
func NormalizeTags(raw string) string {
	return strings.Join(ParseTags(raw), TagSeparator)
}

// ResourceFields is a partial set of writable resource fields. A nil field is not sent.
type ResourceFields struct {
	Title       *string
	Description *string
	Tags        *string
}

func (f ResourceFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Tags == nil
}

// Upload is a file payload to be sent to the catalog
type Upload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type FileChangeKind int

const (
	FileUnset FileChangeKind = iota
	FileClear
	FileReplace
)

// FileChange describes what an update does with the attachment of a resource
type FileChange struct {
	Kind   FileChangeKind
	Upload *Upload
}

func KeepFile() FileChange {
	return FileChange{Kind: FileUnset}
}

func ClearFile() FileChange {
	return FileChange{Kind: FileClear}
}

func ReplaceFile(u Upload) FileChange {
	return FileChange{Kind: FileReplace, Upload: &u}
}

func StringPtr(s string) *string {
	return &s
}
