package http

import (
	"context"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lrn-oss/lrc/internal/app/http/common"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/utils"
)

type LrcHandler struct {
	Service HandlerService
	Options LrcHandlerOptions
}

type LrcHandlerOptions struct {
	// UrlContextRoot is the public root url of the service, e.g. https://catalog.example.org.
	// If empty, the root is derived from each request
	UrlContextRoot string
}

func NewLrcHandler(s HandlerService, options LrcHandlerOptions) *LrcHandler {
	return &LrcHandler{
		Service: s,
		Options: options,
	}
}

// ListResources lists all resources, newest first
// (GET /resources/)
func (h *LrcHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	res, err := h.Service.ListResources(ctx)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	resp := NewMapper(ctx).GetResources(res)
	HandleJsonResponse(w, r, http.StatusOK, resp)
}

// CreateResource creates a resource from a JSON, form or multipart body
// (POST /resources/)
func (h *LrcHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	req, err := parseResourceRequest(r, false)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	defer req.Close()

	res, err := h.Service.CreateResource(ctx, req.fields, req.file)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleJsonResponse(w, r, http.StatusCreated, NewMapper(ctx).GetResource(res))
}

// GetResource
// (GET /resources/{id}/)
func (h *LrcHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	id, err := pathId(r)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	res, err := h.Service.GetResource(ctx, id)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleJsonResponse(w, r, http.StatusOK, NewMapper(ctx).GetResource(res))
}

// ReplaceResource
// (PUT /resources/{id}/)
func (h *LrcHandler) ReplaceResource(w http.ResponseWriter, r *http.Request) {
	h.updateResource(w, r, false)
}

// UpdateResource updates the fields sent in the body. A file sent as resource_file replaces the attachment
// (PATCH /resources/{id}/)
func (h *LrcHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	h.updateResource(w, r, true)
}

func (h *LrcHandler) updateResource(w http.ResponseWriter, r *http.Request, partial bool) {
	ctx := h.createContext(r)

	id, err := pathId(r)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	req, err := parseResourceRequest(r, partial)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	defer req.Close()

	res, err := h.Service.UpdateResource(ctx, id, req.fields, req.file)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleJsonResponse(w, r, http.StatusOK, NewMapper(ctx).GetResource(res))
}

// DeleteResource deletes a resource together with its images
// (DELETE /resources/{id}/)
func (h *LrcHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	id, err := pathId(r)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	if err := h.Service.DeleteResource(ctx, id); err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleNoContentResponse(w, r)
}

// UploadImage attaches an image to a resource
// (POST /resources/{id}/images/)
func (h *LrcHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	id, err := pathId(r)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	req, err := parseImageRequest(r)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	defer req.Close()

	img, err := h.Service.UploadImage(ctx, id, req.image, req.caption)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleJsonResponse(w, r, http.StatusCreated, NewMapper(ctx).GetImage(img))
}

// DeleteImage
// (DELETE /images/{id}/)
func (h *LrcHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	id, err := pathId(r)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	if err := h.Service.DeleteImage(ctx, id); err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleNoContentResponse(w, r)
}

// ListTags lists the distinct tags of all resources
// (GET /tags/)
func (h *LrcHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	tags, err := h.Service.ListTags(ctx)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleJsonResponse(w, r, http.StatusOK, tags)
}

// GetMedia streams a stored file
// (GET /media/{key})
func (h *LrcHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	key := mux.Vars(r)["key"]
	content, info, err := h.Service.FetchMedia(ctx, key)
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}
	defer content.Close()

	if info.ContentType != "" {
		w.Header().Set(common.HeaderContentType, info.ContentType)
	}
	w.Header().Set(common.HeaderXContentTypeOptions, common.NoSniff)
	if rs, ok := content.(io.ReadSeeker); ok {
		http.ServeContent(w, r, path.Base(key), info.ModTime, rs)
		return
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, content); err != nil {
		utils.GetLogger(ctx, "http").Warn("could not stream media", "key", key, "error", err)
	}
}

// GetHealth
// (GET /healthz)
func (h *LrcHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx := h.createContext(r)

	if err := h.Service.CheckHealth(ctx); err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	HandleHealthyResponse(w, r)
}

func (h *LrcHandler) createContext(r *http.Request) context.Context {
	root := h.Options.UrlContextRoot
	if root == "" {
		root = requestRoot(r)
	}
	return context.WithValue(r.Context(), ctxMediaRoot, root)
}

func requestRoot(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get(common.HeaderXForwardedProto); p == "http" || p == "https" {
		scheme = p
	}
	if r.Host == "" {
		return ""
	}
	return scheme + "://" + r.Host
}

func pathId(r *http.Request) (int64, error) {
	return model.ParseId(mux.Vars(r)["id"])
}
