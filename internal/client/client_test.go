package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lrn-oss/lrc/internal/model"
	"github.com/stretchr/testify/assert"
)

const resourceJSON = `{
  "id": 1,
  "title": "Intro to Go",
  "description": null,
  "resource_file_url": null,
  "tags": "go,backend",
  "tags_list": ["go", "backend"],
  "images": [],
  "created_at": "2024-03-01T10:00:00Z",
  "updated_at": "2024-03-01T10:00:00Z"
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/api")
	assert.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c, err := New("http://localhost:8000/api")
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api", c.Root())

	_, err = New("")
	assert.Error(t, err)
	_, err = New("ftp://localhost/api")
	assert.Error(t, err)
}

func TestClient_endpoint(t *testing.T) {
	c, _ := New("http://localhost:8000/api")
	assert.Equal(t, "http://localhost:8000/api/resources/", c.endpoint("resources"))
	assert.Equal(t, "http://localhost:8000/api/resources/12/images/", c.endpoint("resources", "12", "images"))

	c, _ = New("http://localhost:8000/api/")
	assert.Equal(t, "http://localhost:8000/api/images/3/", c.endpoint("images", "3"))
}

func TestClient_ListResources(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/resources/", r.URL.Path)
		_, _ = w.Write([]byte("[" + resourceJSON + "]"))
	})

	res, err := c.ListResources(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, res, 1) {
		assert.Equal(t, int64(1), res[0].ID)
		assert.Equal(t, "Intro to Go", res[0].Title)
		assert.Equal(t, []string{"go", "backend"}, res[0].TagsList)
		assert.Nil(t, res[0].Description)
		assert.Nil(t, res[0].ResourceFileURL)
	}
}

func TestClient_CreateResource(t *testing.T) {
	t.Run("without file uses json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/resources/", r.URL.Path)
			assert.Equal(t, mimeJSON, r.Header.Get(headerContentType))
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"title": "Intro to Go", "tags": "go,backend"}, body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(resourceJSON))
		})

		res, err := c.CreateResource(context.Background(), model.ResourceFields{
			Title: model.StringPtr("Intro to Go"),
			Tags:  model.StringPtr("go,backend"),
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
	})

	t.Run("with file uses multipart", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, strings.HasPrefix(r.Header.Get(headerContentType), "multipart/form-data"))
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Intro to Go", r.FormValue("title"))
			assert.Equal(t, "", r.FormValue("description"))
			_, hasTags := r.MultipartForm.Value["tags"]
			assert.False(t, hasTags)
			f, fh, err := r.FormFile("resource_file")
			if assert.NoError(t, err) {
				assert.Equal(t, "notes.txt", fh.Filename)
				b, _ := io.ReadAll(f)
				assert.Equal(t, "some notes", string(b))
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(resourceJSON))
		})

		_, err := c.CreateResource(context.Background(), model.ResourceFields{
			Title:       model.StringPtr("Intro to Go"),
			Description: model.StringPtr(""),
		}, &model.Upload{Name: "notes.txt", Content: strings.NewReader("some notes")})

		assert.NoError(t, err)
	})

	t.Run("validation error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"title": ["This field is required."]}`))
		})

		_, err := c.CreateResource(context.Background(), model.ResourceFields{}, nil)

		var apiErr *ApiError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, map[string][]string{"title": {"This field is required."}}, apiErr.Fields)
			assert.True(t, apiErr.HasFieldErrors())
		}
		assert.Contains(t, ErrorText(err), "title: This field is required.")
	})
}

func TestClient_UpdateResource(t *testing.T) {
	t.Run("partial fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/resources/1/", r.URL.Path)
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"title": "New Title"}, body)
			_, _ = w.Write([]byte(strings.Replace(resourceJSON, "Intro to Go", "New Title", 1)))
		})

		res, err := c.UpdateResource(context.Background(), 1, model.ResourceFields{Title: model.StringPtr("New Title")}, model.KeepFile())

		assert.NoError(t, err)
		assert.Equal(t, "New Title", res.Title)
	})

	t.Run("replace file", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			_, fh, err := r.FormFile("resource_file")
			if assert.NoError(t, err) {
				assert.Equal(t, "v2.pdf", fh.Filename)
			}
			_, _ = w.Write([]byte(resourceJSON))
		})

		_, err := c.UpdateResource(context.Background(), 1, model.ResourceFields{},
			model.ReplaceFile(model.Upload{Name: "v2.pdf", Content: strings.NewReader("%PDF")}))

		assert.NoError(t, err)
	})

	t.Run("clear file is not supported", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := c.UpdateResource(context.Background(), 1, model.ResourceFields{}, model.ClearFile())

		assert.ErrorIs(t, err, model.ErrFileRemovalNotSupported)
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Not found."}`))
		})

		_, err := c.UpdateResource(context.Background(), 7, model.ResourceFields{}, model.KeepFile())

		var apiErr *ApiError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, http.StatusNotFound, apiErr.Status)
			assert.Equal(t, []string{"Not found."}, apiErr.Messages)
			assert.False(t, apiErr.HasFieldErrors())
		}
		assert.Equal(t, "Not found.", ErrorText(err))
	})
}

func TestClient_DeleteResource(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/resources/5/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteResource(context.Background(), 5)

	assert.NoError(t, err)
}

func TestClient_UploadImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/resources/1/images/", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "cover", r.FormValue("caption"))
		_, fh, err := r.FormFile("image")
		if assert.NoError(t, err) {
			assert.Equal(t, "cover.png", fh.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 9, "resource": 1, "image_url": "http://host/media/resources/1/images/cover.png", "caption": "cover", "uploaded_at": "2024-03-01T10:00:00Z"}`))
	})

	img, err := c.UploadImage(context.Background(), 1, model.Upload{Name: "cover.png", Content: strings.NewReader("png")}, "cover")

	assert.NoError(t, err)
	assert.Equal(t, int64(9), img.ID)
	assert.Equal(t, int64(1), img.Resource)
	if assert.NotNil(t, img.ImageURL) {
		assert.Equal(t, "http://host/media/resources/1/images/cover.png", *img.ImageURL)
	}
}

func TestClient_DeleteImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/images/9/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteImage(context.Background(), 9))
}

func TestClient_ListTags(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags/", r.URL.Path)
		_, _ = w.Write([]byte(`["backend","go"]`))
	})

	tags, err := c.ListTags(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"backend", "go"}, tags)
}

func TestClient_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "value", r.Header.Get("X-Custom"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c, err := New(srv.URL, WithHeaders(map[string]string{"X-Custom": "value"}))
	assert.NoError(t, err)

	res, err := c.ListResources(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []model.Resource{}, res)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c, _ := New(srv.URL)

	_, err := c.ListResources(context.Background())

	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, transportErrorText, ErrorText(err))
}

func TestClient_CanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListResources(ctx)

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, canceledErrorText, ErrorText(err))
}

func TestClient_Cache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write([]byte(`["go"]`))
	}))
	defer srv.Close()
	c, err := New(srv.URL, WithCache(t.TempDir()))
	assert.NoError(t, err)

	for i := 0; i < 2; i++ {
		tags, err := c.ListTags(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"go"}, tags)
	}
	assert.Equal(t, 2, calls)
}

func TestParseErrorDetail(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fields   map[string][]string
		messages []string
		ok       bool
	}{
		{"field list", `{"title": ["This field is required."]}`, map[string][]string{"title": {"This field is required."}}, nil, true},
		{"field string", `{"image": "Image file is required."}`, map[string][]string{"image": {"Image file is required."}}, nil, true},
		{"detail", `{"detail": "Not found."}`, nil, []string{"Not found."}, true},
		{"non field errors", `{"non_field_errors": ["a", "b"]}`, nil, []string{"a", "b"}, true},
		{"list", `["first", "second"]`, nil, []string{"first", "second"}, true},
		{"string", `"just text"`, nil, []string{"just text"}, true},
		{"escaped", `{"title": ["say \"hi\""]}`, map[string][]string{"title": {`say "hi"`}}, nil, true},
		{"html", `<html>oops</html>`, nil, nil, false},
		{"empty", ``, nil, nil, false},
		{"broken json", `{"title": [`, nil, nil, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fields, messages, ok := parseErrorDetail([]byte(test.body))
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.fields, fields)
			assert.Equal(t, test.messages, messages)
		})
	}
}

func TestApiError_Error(t *testing.T) {
	e := &ApiError{Status: 400, StatusText: "400 Bad Request", Fields: map[string][]string{
		"title": {"This field is required."},
		"tags":  {"Ensure this field has no more than 255 characters."},
	}}
	assert.Equal(t, "tags: Ensure this field has no more than 255 characters.; title: This field is required.", e.Error())

	e = newApiError(502, "502 Bad Gateway", []byte("<html>"))
	assert.Equal(t, "request failed: 502 Bad Gateway", e.Error())
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", ErrorText(nil))
	assert.Equal(t, "boom", ErrorText(errors.New("boom")))
	assert.Equal(t, timeoutErrorText, ErrorText(fmt.Errorf("%w: %w", ErrTransport, context.DeadlineExceeded)))
}
