package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kinbiko/jsonassert"
	"github.com/lrn-oss/lrc/internal/app/http/common"
	"github.com/lrn-oss/lrc/internal/app/http/mocks"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/storage"
	"github.com/lrn-oss/lrc/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var unknownErr = errors.New("an unknown error")

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)
)

func setupTestHttpHandler(hs HandlerService) http.Handler {
	handler := NewLrcHandler(
		hs,
		LrcHandlerOptions{
			UrlContextRoot: "",
		})

	return NewHttpHandler(handler, DefaultBasePath)
}

func tourResource() storage.Resource {
	return storage.Resource{
		ID:           1,
		Title:        "Go Tour",
		Description:  model.StringPtr("Intro"),
		ResourceFile: "resources/1/files/tour.pdf",
		Tags:         "go,basics",
		Images: []storage.Image{
			{ID: 3, ResourceID: 1, Image: "resources/1/images/cover.png", Caption: "cover", UploadedAt: t1},
		},
		CreatedAt: t0,
		UpdatedAt: t0,
	}
}

const tourJSON = `{
	"id": 1,
	"title": "Go Tour",
	"description": "Intro",
	"resource_file": "http://example.com/media/resources/1/files/tour.pdf",
	"resource_file_url": "http://example.com/media/resources/1/files/tour.pdf",
	"tags": "go,basics",
	"tags_list": ["go", "basics"],
	"images": [{
		"id": 3,
		"resource": 1,
		"image": "http://example.com/media/resources/1/images/cover.png",
		"image_url": "http://example.com/media/resources/1/images/cover.png",
		"caption": "cover",
		"uploaded_at": "2024-03-01T10:05:00Z"
	}],
	"created_at": "2024-03-01T10:00:00Z",
	"updated_at": "2024-03-01T10:00:00Z"
}`

func Test_ListResources(t *testing.T) {
	route := "/api/resources/"

	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("list", func(t *testing.T) {
		plain := storage.Resource{ID: 2, Title: "Notes", CreatedAt: t0, UpdatedAt: t0}
		hs.On("ListResources", mock.Anything).Return([]storage.Resource{tourResource(), plain}, nil).Once()

		rec := testutils.NewRequest(http.MethodGet, route).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, common.MimeJSON, rec.Header().Get(common.HeaderContentType))
		ja := jsonassert.New(t)
		ja.Assertf(rec.Body.String(), `[`+tourJSON+`, {
			"id": 2,
			"title": "Notes",
			"description": null,
			"resource_file_url": null,
			"tags": "",
			"tags_list": [],
			"images": [],
			"created_at": "2024-03-01T10:00:00Z",
			"updated_at": "2024-03-01T10:00:00Z"
		}]`)
	})

	t.Run("empty list", func(t *testing.T) {
		hs.On("ListResources", mock.Anything).Return([]storage.Resource{}, nil).Once()

		rec := testutils.NewRequest(http.MethodGet, route).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("not modified", func(t *testing.T) {
		hs.On("ListResources", mock.Anything).Return([]storage.Resource{tourResource()}, nil).Twice()

		rec := testutils.NewRequest(http.MethodGet, route).RunOnHandler(httpHandler)
		etag := rec.Header().Get(common.HeaderETag)
		if !assert.NotEmpty(t, etag) {
			t.FailNow()
		}
		assert.Equal(t, common.NoCache, rec.Header().Get(common.HeaderCacheControl))

		rec = testutils.NewRequest(http.MethodGet, route).WithHeader(common.HeaderIfNoneMatch, etag).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusNotModified, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("forwarded https", func(t *testing.T) {
		hs.On("ListResources", mock.Anything).Return([]storage.Resource{tourResource()}, nil).Once()

		rec := testutils.NewRequest(http.MethodGet, route).WithHeader(common.HeaderXForwardedProto, "https").RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"https://example.com/media/resources/1/files/tour.pdf"`)
	})

	t.Run("with unknown error", func(t *testing.T) {
		hs.On("ListResources", mock.Anything).Return(nil, unknownErr).Once()

		rec := testutils.NewRequest(http.MethodGet, route).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusInternalServerError, `{"detail": "A server error occurred."}`)
	})
}

func Test_UrlContextRoot(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := NewHttpHandler(NewLrcHandler(hs, LrcHandlerOptions{UrlContextRoot: "https://catalog.example.org/"}), DefaultBasePath)
	hs.On("GetResource", mock.Anything, int64(1)).Return(tourResource(), nil).Once()

	rec := testutils.NewRequest(http.MethodGet, "/api/resources/1/").RunOnHandler(httpHandler)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"https://catalog.example.org/media/resources/1/images/cover.png"`)
}

func Test_GetResource(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("found", func(t *testing.T) {
		hs.On("GetResource", mock.Anything, int64(1)).Return(tourResource(), nil).Once()

		rec := testutils.NewRequest(http.MethodGet, "/api/resources/1/").RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), tourJSON)
	})

	t.Run("not found", func(t *testing.T) {
		hs.On("GetResource", mock.Anything, int64(42)).Return(storage.Resource{}, model.ErrResourceNotFound).Once()

		rec := testutils.NewRequest(http.MethodGet, "/api/resources/42/").RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodGet, "/api/resources/0/").RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodGet, "/api/resources/abc/").RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})
}

func Test_CreateResource(t *testing.T) {
	route := "/api/resources/"

	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("json body", func(t *testing.T) {
		hs.On("CreateResource", mock.Anything, mock.MatchedBy(func(f model.ResourceFields) bool {
			return f.Title != nil && *f.Title == "Go Tour" && f.Tags != nil && *f.Tags == "go, basics" &&
				f.Description != nil && *f.Description == "Intro"
		}), (*model.Upload)(nil)).Return(tourResource(), nil).Once()

		rec := testutils.NewRequest(http.MethodPost, route).
			WithJSON(map[string]any{"title": "  Go Tour ", "tags": "go, basics", "description": "\n Intro  "}).
			RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusCreated, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), tourJSON)
	})

	t.Run("multipart body with file", func(t *testing.T) {
		var received string
		hs.On("CreateResource", mock.Anything, mock.Anything, mock.Anything).Return(
			func(ctx context.Context, f model.ResourceFields, file *model.Upload) (storage.Resource, error) {
				assert.Equal(t, "Go Tour", *f.Title)
				if assert.NotNil(t, file) {
					assert.Equal(t, "tour.pdf", file.Name)
					b, _ := io.ReadAll(file.Content)
					received = string(b)
				}
				return tourResource(), nil
			}).Once()

		rec := testutils.NewRequest(http.MethodPost, route).
			WithMultipart(map[string]string{"title": "Go Tour"}, testutils.FormFile{Field: "resource_file", Filename: "tour.pdf", Content: []byte("%PDF-1.4")}).
			RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "%PDF-1.4", received)
	})

	t.Run("missing title", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).WithJSON(map[string]any{"tags": "go"}).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"title": ["This field is required."]}`)
	})

	t.Run("blank title", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).WithJSON(map[string]any{"title": "   "}).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"title": ["This field may not be blank."]}`)
	})

	t.Run("too long fields", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).
			WithJSON(map[string]any{"title": strings.Repeat("t", 201), "tags": strings.Repeat("g", 256)}).
			RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{
			"title": ["Ensure this field has no more than 200 characters."],
			"tags": ["Ensure this field has no more than 255 characters."]
		}`)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).
			WithHeader(common.HeaderContentType, common.MimeJSON).
			WithBody([]byte(`{"title": 5}`)).
			RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "JSON parse error - ")
	})

	t.Run("unsupported media type", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).
			WithHeader(common.HeaderContentType, "text/plain").
			WithBody([]byte("title")).
			RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusUnsupportedMediaType, `{"detail": "Unsupported media type \"text/plain\" in request."}`)
	})
}

func Test_UpdateResource(t *testing.T) {
	route := "/api/resources/1/"

	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("partial update", func(t *testing.T) {
		hs.On("UpdateResource", mock.Anything, int64(1), mock.MatchedBy(func(f model.ResourceFields) bool {
			return f.Title == nil && f.Description == nil && f.Tags != nil && *f.Tags == "go,web"
		}), (*model.Upload)(nil)).Return(tourResource(), nil).Once()

		rec := testutils.NewRequest(http.MethodPatch, route).WithJSON(map[string]any{"tags": "go,web"}).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("partial update with blank title", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPatch, route).WithJSON(map[string]any{"title": ""}).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"title": ["This field may not be blank."]}`)
	})

	t.Run("replace file", func(t *testing.T) {
		hs.On("UpdateResource", mock.Anything, int64(1), mock.Anything, mock.MatchedBy(func(u *model.Upload) bool {
			return u != nil && u.Name == "new.pdf"
		})).Return(tourResource(), nil).Once()

		rec := testutils.NewRequest(http.MethodPatch, route).
			WithMultipart(nil, testutils.FormFile{Field: "resource_file", Filename: "new.pdf", Content: []byte("%PDF")}).
			RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("replace without title", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPut, route).WithJSON(map[string]any{"description": "x"}).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"title": ["This field is required."]}`)
	})

	t.Run("replace", func(t *testing.T) {
		hs.On("UpdateResource", mock.Anything, int64(1), mock.MatchedBy(func(f model.ResourceFields) bool {
			return f.Title != nil && *f.Title == "Go Tour"
		}), (*model.Upload)(nil)).Return(tourResource(), nil).Once()

		rec := testutils.NewRequest(http.MethodPut, route).WithJSON(map[string]any{"title": "Go Tour"}).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		hs.On("UpdateResource", mock.Anything, int64(9), mock.Anything, mock.Anything).Return(storage.Resource{}, model.ErrResourceNotFound).Once()

		rec := testutils.NewRequest(http.MethodPatch, "/api/resources/9/").WithJSON(map[string]any{"tags": "x"}).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})
}

func Test_DeleteResource(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("deleted", func(t *testing.T) {
		hs.On("DeleteResource", mock.Anything, int64(1)).Return(nil).Once()

		rec := testutils.NewRequest(http.MethodDelete, "/api/resources/1/").RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("not found", func(t *testing.T) {
		hs.On("DeleteResource", mock.Anything, int64(2)).Return(model.ErrResourceNotFound).Once()

		rec := testutils.NewRequest(http.MethodDelete, "/api/resources/2/").RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})
}

func Test_UploadImage(t *testing.T) {
	route := "/api/resources/1/images/"

	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("uploaded", func(t *testing.T) {
		hs.On("UploadImage", mock.Anything, int64(1), mock.MatchedBy(func(u model.Upload) bool {
			return u.Name == "cover.png" && u.ContentType == "image/png"
		}), "cover").Return(tourResource().Images[0], nil).Once()

		rec := testutils.NewRequest(http.MethodPost, route).
			WithMultipart(map[string]string{"caption": " cover\t"}, testutils.FormFile{Field: "image", Filename: "cover.png", Content: pngHeader}).
			RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusCreated, rec.Code)
		jsonassert.New(t).Assertf(rec.Body.String(), `{
			"id": 3,
			"resource": 1,
			"image": "http://example.com/media/resources/1/images/cover.png",
			"image_url": "http://example.com/media/resources/1/images/cover.png",
			"caption": "cover",
			"uploaded_at": "2024-03-01T10:05:00Z"
		}`)
	})

	t.Run("without image", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).
			WithMultipart(map[string]string{"caption": "cover"}).
			RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"image": "Image file is required."}`)
	})

	t.Run("not an image", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).
			WithMultipart(nil, testutils.FormFile{Field: "image", Filename: "cover.png", Content: []byte("plain text")}).
			RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"image": ["`+common.ErrorInvalidImage+`"]}`)
	})

	t.Run("caption too long", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).
			WithMultipart(map[string]string{"caption": strings.Repeat("c", 256)}, testutils.FormFile{Field: "image", Filename: "cover.png", Content: pngHeader}).
			RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusBadRequest, `{"caption": ["Ensure this field has no more than 255 characters."]}`)
	})

	t.Run("json body", func(t *testing.T) {
		rec := testutils.NewRequest(http.MethodPost, route).WithJSON(map[string]any{"caption": "x"}).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("unknown resource", func(t *testing.T) {
		hs.On("UploadImage", mock.Anything, int64(5), mock.Anything, "").Return(storage.Image{}, model.ErrResourceNotFound).Once()

		rec := testutils.NewRequest(http.MethodPost, "/api/resources/5/images/").
			WithMultipart(nil, testutils.FormFile{Field: "image", Filename: "cover.png", Content: pngHeader}).
			RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})
}

func Test_DeleteImage(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	hs.On("DeleteImage", mock.Anything, int64(3)).Return(nil).Once()
	hs.On("DeleteImage", mock.Anything, int64(4)).Return(model.ErrImageNotFound).Once()

	rec := testutils.NewRequest(http.MethodDelete, "/api/images/3/").RunOnHandler(httpHandler)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutils.NewRequest(http.MethodDelete, "/api/images/4/").RunOnHandler(httpHandler)
	assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
}

func Test_ListTags(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)
	hs.On("ListTags", mock.Anything).Return([]string{"basics", "go"}, nil).Once()

	rec := testutils.NewRequest(http.MethodGet, "/api/tags/").RunOnHandler(httpHandler)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["basics", "go"]`, rec.Body.String())
}

func Test_GetMedia(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("stream", func(t *testing.T) {
		hs.On("FetchMedia", mock.Anything, "resources/1/files/notes.txt").Return(
			io.NopCloser(strings.NewReader("hello")),
			storage.BlobInfo{Key: "resources/1/files/notes.txt", ContentType: "text/plain", Size: 5, ModTime: t0},
			nil).Once()

		rec := testutils.NewRequest(http.MethodGet, "/media/resources/1/files/notes.txt").RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain", rec.Header().Get(common.HeaderContentType))
		assert.Equal(t, "5", rec.Header().Get("Content-Length"))
		assert.Equal(t, "hello", rec.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		hs.On("FetchMedia", mock.Anything, "resources/1/files/gone.txt").Return(nil, storage.BlobInfo{}, storage.ErrBlobNotFound).Once()

		rec := testutils.NewRequest(http.MethodGet, "/media/resources/1/files/gone.txt").RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)
	})
}

func Test_Health(t *testing.T) {
	route := "/healthz"

	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	t.Run("with success", func(t *testing.T) {
		hs.On("CheckHealth", mock.Anything).Return(nil).Once()

		rec := testutils.NewRequest(http.MethodGet, route).RunOnHandler(httpHandler)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, common.NoStore, rec.Header().Get(common.HeaderCacheControl))
	})

	t.Run("with unavailable database", func(t *testing.T) {
		hs.On("CheckHealth", mock.Anything).Return(NewServiceUnavailableError(unknownErr)).Once()

		rec := testutils.NewRequest(http.MethodGet, route).RunOnHandler(httpHandler)

		assertErrorResponse(t, rec, http.StatusServiceUnavailable, `{"detail": "`+common.Error503Detail+`"}`)
	})
}

func Test_NoRoute(t *testing.T) {
	hs := mocks.NewHandlerService(t)
	httpHandler := setupTestHttpHandler(hs)

	rec := testutils.NewRequest(http.MethodGet, "/api/unknown/").RunOnHandler(httpHandler)
	assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)

	rec = testutils.NewRequest(http.MethodGet, "/resources/").RunOnHandler(httpHandler)
	assertErrorResponse(t, rec, http.StatusNotFound, `{"detail": "Not found."}`)

	rec = testutils.NewRequest(http.MethodPut, "/api/resources/").RunOnHandler(httpHandler)
	assertErrorResponse(t, rec, http.StatusMethodNotAllowed, `{"detail": "Method \"PUT\" not allowed."}`)
}

func assertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, status int, body string) {
	t.Helper()
	assert.Equal(t, status, rec.Code)
	assert.Equal(t, common.MimeJSON, rec.Header().Get(common.HeaderContentType))
	assert.JSONEq(t, body, rec.Body.String())
}
