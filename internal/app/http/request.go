package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lrn-oss/lrc/internal/app/http/common"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/utils"
)

const (
	maxMemory       = 32 << 20
	mimeOctetStream = "application/octet-stream"

	fieldTitle        = "title"
	fieldDescription  = "description"
	fieldTags         = "tags"
	fieldResourceFile = "resource_file"
	fieldImage        = "image"
	fieldCaption      = "caption"
)

// resourcePayload is the body of a request creating or replacing a resource
type resourcePayload struct {
	Title       *string `json:"title" validate:"required,notblank,max=200"`
	Description *string `json:"description"`
	Tags        *string `json:"tags" validate:"omitnil,max=255"`
}

// partialResourcePayload is the body of a request partially updating a resource
type partialResourcePayload struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description"`
	Tags        *string `json:"tags" validate:"omitnil,max=255"`
}

type imagePayload struct {
	Caption string `json:"caption" validate:"max=255"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// toValidationError converts the errors reported by the validator to field messages
func toValidationError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	res := &ValidationError{}
	for _, fe := range vErrs {
		res.Add(fe.Field(), validationMessage(fe))
	}
	return res
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return common.ErrorRequired
	case "notblank":
		return common.ErrorBlank
	case "max":
		return fmt.Sprintf(common.ErrorMaxLength, fe.Param())
	default:
		return common.ErrorInvalid
	}
}

// resourceRequest is a parsed request to create or modify a resource
type resourceRequest struct {
	fields model.ResourceFields
	file   *model.Upload
	closer io.Closer
}

func (rr *resourceRequest) Close() {
	if rr.closer != nil {
		_ = rr.closer.Close()
	}
}

// parseResourceRequest reads the fields and the optional file of a resource from a JSON, urlencoded form or
// multipart form body. If partial is false, the title is required
func parseResourceRequest(r *http.Request, partial bool) (*resourceRequest, error) {
	mediaType, err := requestMediaType(r)
	if err != nil {
		return nil, err
	}
	res := &resourceRequest{}
	switch mediaType {
	case common.MimeJSON:
		var p partialResourcePayload
		if err := decodeJSON(r, &p); err != nil {
			return nil, err
		}
		res.fields = model.ResourceFields(p)
	case common.MimeForm, common.MimeMultipartForm:
		form, err := parseForm(r, mediaType)
		if err != nil {
			return nil, err
		}
		res.fields = model.ResourceFields{
			Title:       formValue(form, fieldTitle),
			Description: formValue(form, fieldDescription),
			Tags:        formValue(form, fieldTags),
		}
		if form.File != nil {
			res.file, res.closer, err = formFile(form, fieldResourceFile)
			if err != nil {
				return nil, err
			}
		}
	}

	res.fields.Title = trimmed(res.fields.Title)
	res.fields.Description = trimmed(res.fields.Description)
	var payload any
	if partial {
		payload = partialResourcePayload(res.fields)
	} else {
		payload = resourcePayload(res.fields)
	}
	if err := validate.Struct(payload); err != nil {
		res.Close()
		return nil, toValidationError(err)
	}
	return res, nil
}

type imageRequest struct {
	image   model.Upload
	caption string
	closer  io.Closer
}

func (ir *imageRequest) Close() {
	if ir.closer != nil {
		_ = ir.closer.Close()
	}
}

// parseImageRequest reads an image upload. The image must be sent as a file of a multipart form
func parseImageRequest(r *http.Request) (*imageRequest, error) {
	mediaType, err := requestMediaType(r)
	if err != nil {
		return nil, err
	}
	if mediaType != common.MimeMultipartForm && mediaType != common.MimeForm {
		return nil, &BaseHttpError{Status: http.StatusUnsupportedMediaType, Detail: fmt.Sprintf(common.Error415Detail, mediaType)}
	}
	form, err := parseForm(r, mediaType)
	if err != nil {
		return nil, err
	}
	up, closer, err := formFile(form, fieldImage)
	if err != nil {
		return nil, err
	}
	if up == nil {
		return nil, NewFieldError(fieldImage, common.ErrorImageRequired)
	}
	res := &imageRequest{image: *up, closer: closer}
	if c := formValue(form, fieldCaption); c != nil {
		res.caption = strings.TrimSpace(*c)
	}
	if err := validate.Struct(imagePayload{Caption: res.caption}); err != nil {
		res.Close()
		return nil, toValidationError(err)
	}

	head, content, err := utils.PeekReader(res.image.Content, 512)
	if err != nil {
		res.Close()
		return nil, err
	}
	detected := http.DetectContentType(head)
	if !strings.HasPrefix(detected, "image/") {
		res.Close()
		vErr := &ValidationError{}
		vErr.Add(fieldImage, common.ErrorInvalidImage)
		return nil, vErr
	}
	res.image.Content = content
	res.image.ContentType = detected
	return res, nil
}

func requestMediaType(r *http.Request) (string, error) {
	ct := r.Header.Get(common.HeaderContentType)
	if ct == "" {
		return common.MimeJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", NewBadRequestError(err, "Malformed Content-Type header: %s", ct)
	}
	switch mediaType {
	case common.MimeJSON, common.MimeForm, common.MimeMultipartForm:
		return mediaType, nil
	default:
		return "", &BaseHttpError{Status: http.StatusUnsupportedMediaType, Detail: fmt.Sprintf(common.Error415Detail, mediaType)}
	}
}

func decodeJSON(r *http.Request, target any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil
	}
	return json.Unmarshal(b, target)
}

func parseForm(r *http.Request, mediaType string) (*multipart.Form, error) {
	if mediaType == common.MimeMultipartForm {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, NewBadRequestError(err, "Multipart form parse error - %s", err.Error())
		}
		return r.MultipartForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, NewBadRequestError(err, "Form parse error - %s", err.Error())
	}
	return &multipart.Form{Value: r.PostForm}, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	return model.StringPtr(strings.TrimSpace(*v))
}

func formValue(form *multipart.Form, key string) *string {
	if vs, ok := form.Value[key]; ok && len(vs) > 0 {
		return model.StringPtr(vs[0])
	}
	return nil
}

// formFile returns the file uploaded as key, or nil if there is none
func formFile(form *multipart.Form, key string) (*model.Upload, io.Closer, error) {
	fhs := form.File[key]
	if len(fhs) == 0 {
		return nil, nil, nil
	}
	fh := fhs[0]
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	ct := fh.Header.Get(common.HeaderContentType)
	if ct == mimeOctetStream {
		ct = ""
	}
	return &model.Upload{
		Name:        fh.Filename,
		ContentType: ct,
		Content:     f,
	}, f, nil
}
