// Package client implements the HTTP client for the learning resource catalog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/utils"
)

const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	mimeJSON          = "application/json"

	pathResources = "resources"
	pathImages    = "images"
	pathTags      = "tags"

	fieldTitle        = "title"
	fieldDescription  = "description"
	fieldTags         = "tags"
	fieldResourceFile = "resource_file"
	fieldImage        = "image"
	fieldCaption      = "caption"
)

// Client talks to an instance of the catalog REST API
type Client struct {
	root       string
	parsedRoot *url.URL
	headers    map[string]string
	client     *http.Client
}

type Option func(c *Client) error

// WithHTTPClient replaces the http.Client used to send requests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.client = hc
		return nil
	}
}

// WithCache enables an HTTP cache on disk in dir, which honors the caching headers sent by the server
func WithCache(dir string) Option {
	return func(c *Client) error {
		err := os.MkdirAll(dir, 0770)
		if err != nil {
			return fmt.Errorf("cannot create http cache dir %s: %w", dir, err)
		}
		t := httpcache.NewTransport(diskcache.New(dir))
		if c.client.Transport != nil {
			t.Transport = c.client.Transport
		}
		c.client = &http.Client{Transport: t, Timeout: c.client.Timeout}
		return nil
	}
}

// WithHeaders adds the given headers to every request
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) error {
		for k, v := range headers {
			c.headers[k] = v
		}
		return nil
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("invalid client config. base url must not be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid client config. unsupported url scheme in %s", baseURL)
	}
	c := &Client{
		root:       baseURL,
		parsedRoot: u,
		headers:    map[string]string{},
		client:     &http.Client{},
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Client) Root() string {
	return c.root
}

func (c *Client) ListResources(ctx context.Context) ([]model.Resource, error) {
	var res []model.Resource
	err := c.doJSON(ctx, http.MethodGet, c.endpoint(pathResources), nil, &res)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []model.Resource{}
	}
	return res, nil
}

func (c *Client) GetResource(ctx context.Context, id int64) (model.Resource, error) {
	var res model.Resource
	err := c.doJSON(ctx, http.MethodGet, c.endpoint(pathResources, model.FormatId(id)), nil, &res)
	return res, err
}

// CreateResource creates a resource. If file is not nil, it is uploaded as the attachment of the new resource
func (c *Client) CreateResource(ctx context.Context, fields model.ResourceFields, file *model.Upload) (model.Resource, error) {
	body, err := newRequestBody(fields, fieldResourceFile, file)
	if err != nil {
		return model.Resource{}, err
	}
	var res model.Resource
	err = c.doJSON(ctx, http.MethodPost, c.endpoint(pathResources), body, &res)
	return res, err
}

// UpdateResource partially updates a resource. Only non-nil fields are sent. The attachment is left unchanged,
// unless file requests its replacement. Removing the attachment is not supported.
func (c *Client) UpdateResource(ctx context.Context, id int64, fields model.ResourceFields, file model.FileChange) (model.Resource, error) {
	var upload *model.Upload
	switch file.Kind {
	case model.FileUnset:
	case model.FileReplace:
		if file.Upload == nil {
			return model.Resource{}, fmt.Errorf("file replacement requested without a file")
		}
		upload = file.Upload
	case model.FileClear:
		return model.Resource{}, model.ErrFileRemovalNotSupported
	default:
		return model.Resource{}, fmt.Errorf("unknown file change kind: %d", file.Kind)
	}
	body, err := newRequestBody(fields, fieldResourceFile, upload)
	if err != nil {
		return model.Resource{}, err
	}
	var res model.Resource
	err = c.doJSON(ctx, http.MethodPatch, c.endpoint(pathResources, model.FormatId(id)), body, &res)
	return res, err
}

func (c *Client) DeleteResource(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint(pathResources, model.FormatId(id)), nil, nil)
}

func (c *Client) UploadImage(ctx context.Context, resourceID int64, img model.Upload, caption string) (model.Image, error) {
	body, err := newMultipartBody(map[string]string{fieldCaption: caption}, fieldImage, &img)
	if err != nil {
		return model.Image{}, err
	}
	var res model.Image
	err = c.doJSON(ctx, http.MethodPost, c.endpoint(pathResources, model.FormatId(resourceID), pathImages), body, &res)
	return res, err
}

func (c *Client) DeleteImage(ctx context.Context, imageID int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint(pathImages, model.FormatId(imageID)), nil, nil)
}

// ListTags returns the tags aggregated by the server over all resources
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var res []string
	err := c.doJSON(ctx, http.MethodGet, c.endpoint(pathTags), nil, &res)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []string{}
	}
	return res, nil
}

// endpoint builds the url of an API route. Routes always end with a slash
func (c *Client) endpoint(segments ...string) string {
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.parsedRoot.JoinPath(path.Join(segments...) + "/").String()
}

type requestBody struct {
	contentType string
	content     []byte
}

// newRequestBody encodes the fields as JSON, unless a file is to be sent, in which case multipart encoding is used
func newRequestBody(fields model.ResourceFields, fileField string, file *model.Upload) (*requestBody, error) {
	values := map[string]string{}
	if fields.Title != nil {
		values[fieldTitle] = *fields.Title
	}
	if fields.Description != nil {
		values[fieldDescription] = *fields.Description
	}
	if fields.Tags != nil {
		values[fieldTags] = *fields.Tags
	}
	if file != nil {
		return newMultipartBody(values, fileField, file)
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return &requestBody{contentType: mimeJSON, content: b}, nil
}

func newMultipartBody(values map[string]string, fileField string, file *model.Upload) (*requestBody, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range values {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if file != nil {
		if file.Content == nil {
			return nil, fmt.Errorf("file %s has no content", file.Name)
		}
		part, err := w.CreateFormFile(fileField, file.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("cannot read file %s: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return &requestBody{contentType: w.FormDataContentType(), content: buf.Bytes()}, nil
}

// doJSON sends a request and decodes a successful response into target, if target is not nil
func (c *Client) doJSON(ctx context.Context, method, reqUrl string, body *requestBody, target any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.content)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqUrl, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set(headerContentType, body.contentType)
	}
	req.Header.Set(headerAccept, mimeJSON)

	resp, err := c.doHttp(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newApiError(resp.StatusCode, resp.Status, data)
	}
	if target == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("cannot decode response from %s: %w", reqUrl, err)
	}
	return nil
}

func (c *Client) doHttp(req *http.Request) (*http.Response, error) {
	for h, v := range c.headers {
		req.Header.Set(h, v)
	}
	log := utils.GetLogger(req.Context(), "client")
	log.Debug("sending request", "method", req.Method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error(err.Error())
	}
	if resp != nil && resp.StatusCode >= http.StatusBadRequest {
		log.Error("received error response from catalog", "status", resp.StatusCode, "method", req.Method, "url", req.URL.String())
	}
	return resp, err
}
