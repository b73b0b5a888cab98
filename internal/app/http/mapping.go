package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/storage"
)

type Mapper struct {
	Ctx context.Context
}

func NewMapper(ctx context.Context) *Mapper {
	return &Mapper{
		Ctx: ctx,
	}
}

func (m *Mapper) GetResources(resources []storage.Resource) []model.Resource {
	data := []model.Resource{}
	for _, v := range resources {
		data = append(data, m.GetResource(v))
	}
	return data
}

func (m *Mapper) GetResource(res storage.Resource) model.Resource {
	r := model.Resource{
		ID:           res.ID,
		Title:        res.Title,
		Description:  res.Description,
		ResourceFile: res.ResourceFile,
		Tags:         res.Tags,
		TagsList:     model.ParseTags(res.Tags),
		Images:       []model.Image{},
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
	}
	if res.ResourceFile != "" {
		href := m.mediaLink(res.ResourceFile)
		r.ResourceFile = href
		r.ResourceFileURL = &href
	}
	for _, img := range res.Images {
		r.Images = append(r.Images, m.GetImage(img))
	}
	return r
}

func (m *Mapper) GetImage(img storage.Image) model.Image {
	href := m.mediaLink(img.Image)
	return model.Image{
		ID:         img.ID,
		Resource:   img.ResourceID,
		Image:      href,
		ImageURL:   &href,
		Caption:    img.Caption,
		UploadedAt: img.UploadedAt,
	}
}

// mediaLink returns the absolute url under which the blob stored as key is served
func (m *Mapper) mediaLink(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	link := basePathMedia + strings.Join(segments, "/")
	root, ok := m.Ctx.Value(ctxMediaRoot).(string)
	if !ok || root == "" {
		return link
	}
	return strings.TrimSuffix(root, "/") + link
}
