package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
)

// Request builds a request to be served by a http.Handler in tests
type Request struct {
	method  string
	route   string
	headers map[string]string
	body    []byte
}

// FormFile is a file part of a multipart request body
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

func NewRequest(method, route string) *Request {
	return &Request{
		method:  method,
		route:   route,
		headers: make(map[string]string),
	}
}

func (r *Request) WithHeader(key, value string) *Request {
	r.headers[key] = value
	return r
}

func (r *Request) WithBody(body []byte) *Request {
	r.body = body
	return r
}

// WithJSON sets the JSON encoding of v as body
func (r *Request) WithJSON(v any) *Request {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	r.headers["Content-Type"] = "application/json"
	r.body = b
	return r
}

// WithMultipart sets a multipart/form-data body made of the given fields and files
func (r *Request) WithMultipart(fields map[string]string, files ...FormFile) *Request {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			panic(err)
		}
		_, _ = part.Write(f.Content)
	}
	_ = w.Close()
	r.headers["Content-Type"] = w.FormDataContentType()
	r.body = buf.Bytes()
	return r
}

func (r *Request) RunOnHandler(h http.Handler) *httptest.ResponseRecorder {
	var reader io.Reader
	if r.body != nil {
		reader = bytes.NewReader(r.body)
	}

	req := httptest.NewRequest(r.method, r.route, reader)
	for k, v := range r.headers {
		req.Header.Add(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
