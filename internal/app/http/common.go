package http

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lrn-oss/lrc/internal/app/http/common"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/storage"
	"github.com/lrn-oss/lrc/internal/utils"
)

const (
	basePathMedia = "/media/"

	ctxMediaRoot ctxKey = "mediaRoot"
)

type ctxKey string

// HandleJsonResponse writes data as JSON. Successful responses to GET requests carry an ETag and are answered
// with 304 Not Modified if the client already holds the current representation.
func HandleJsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		HandleErrorResponse(w, r, err)
		return
	}

	w.Header().Set(common.HeaderContentType, common.MimeJSON)
	if status == http.StatusOK && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		etag := computeETag(body)
		w.Header().Set(common.HeaderETag, etag)
		w.Header().Set(common.HeaderCacheControl, common.NoCache)
		if etagMatches(r.Header.Get(common.HeaderIfNoneMatch), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func HandleNoContentResponse(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func HandleHealthyResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(common.HeaderCacheControl, common.NoStore)
	w.WriteHeader(http.StatusNoContent)
}

// HandleErrorResponse writes err in the error format of the catalog API: either an object mapping field names to
// lists of messages, or an object with a single "detail" message
func HandleErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var body any
	status := http.StatusInternalServerError

	var vErr *ValidationError
	var hErr *BaseHttpError
	var nfErr *model.ErrNotFound
	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
		body = vErr.Fields
	case errors.As(err, &hErr):
		status = hErr.Status
		if hErr.Field != "" {
			body = map[string]string{hErr.Field: hErr.Detail}
		} else {
			body = detailBody(hErr.Detail)
		}
	case errors.As(err, &nfErr), errors.Is(err, storage.ErrBlobNotFound), errors.Is(err, model.ErrInvalidId):
		status = http.StatusNotFound
		body = detailBody(common.Error404Detail)
	case errors.As(err, &synErr), errors.As(err, &typeErr):
		status = http.StatusBadRequest
		body = detailBody(fmt.Sprintf(common.ErrorParseDetail, err.Error()))
	default:
		body = detailBody(common.Error500Detail)
	}

	log := utils.GetLogger(r.Context(), "http")
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	respBody, _ := json.MarshalIndent(body, "", "    ")
	w.Header().Set(common.HeaderContentType, common.MimeJSON)
	w.Header().Set(common.HeaderXContentTypeOptions, common.NoSniff)
	w.WriteHeader(status)
	_, _ = w.Write(respBody)
}

func detailBody(detail string) map[string]string {
	return map[string]string{"detail": detail}
}

func computeETag(body []byte) string {
	sum := sha1.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}
	return false
}

type BaseHttpError struct {
	Status int
	Detail string
	// Field, if set, is the name of the request field the error refers to
	Field string
	Err   error
}

func (e *BaseHttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %s", e.Status, e.Detail, e.Err.Error())
	} else {
		return fmt.Sprintf("%d: %s", e.Status, e.Detail)
	}
}

func (e *BaseHttpError) Unwrap() error {
	return e.Err
}

func NewNotFoundError(err error, detail string, args ...any) error {
	detail = fmt.Sprintf(detail, args...)
	return &BaseHttpError{
		Status: http.StatusNotFound,
		Detail: detail,
		Err:    err,
	}
}

func NewBadRequestError(err error, detail string, args ...any) error {
	detail = fmt.Sprintf(detail, args...)
	return &BaseHttpError{
		Status: http.StatusBadRequest,
		Detail: detail,
		Err:    err,
	}
}

func NewFieldError(field, detail string) error {
	return &BaseHttpError{
		Status: http.StatusBadRequest,
		Detail: detail,
		Field:  field,
	}
}

func NewServiceUnavailableError(err error) error {
	return &BaseHttpError{
		Status: http.StatusServiceUnavailable,
		Detail: common.Error503Detail,
		Err:    err,
	}
}

// ValidationError holds the messages for each rejected request field
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for f, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(msgs, " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
