package common

const (
	Error400Detail     = "Bad Request"
	Error404Detail     = "Not found."
	Error405Detail     = "Method \"%s\" not allowed."
	Error415Detail     = "Unsupported media type \"%s\" in request."
	Error500Detail     = "A server error occurred."
	Error503Detail     = "Service temporarily unavailable, try again later."
	ErrorParseDetail   = "JSON parse error - %s"
	ErrorRequired      = "This field is required."
	ErrorBlank         = "This field may not be blank."
	ErrorMaxLength     = "Ensure this field has no more than %s characters."
	ErrorInvalid       = "Invalid value."
	ErrorImageRequired = "Image file is required."
	ErrorInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

	HeaderContentType         = "Content-Type"
	HeaderCacheControl        = "Cache-Control"
	HeaderETag                = "ETag"
	HeaderIfNoneMatch         = "If-None-Match"
	HeaderXContentTypeOptions = "X-Content-Type-Options"
	HeaderXForwardedProto     = "X-Forwarded-Proto"
	MimeJSON                  = "application/json"
	MimeMultipartForm         = "multipart/form-data"
	MimeForm                  = "application/x-www-form-urlencoded"
	NoSniff                   = "nosniff"
	NoCache                   = "no-cache"
	NoStore                   = "no-cache, no-store, max-age=0, must-revalidate"
)
