package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lrn-oss/lrc/internal/app/http/common"
)

const DefaultBasePath = "/api"

const idPattern = "{id:[0-9]+}"

// NewHttpHandler registers the routes of h. The API routes are served under basePath, media files and the health
// check at the root. The middlewares wrap the whole router, the first one being the outermost
func NewHttpHandler(h *LrcHandler, basePath string, mws ...func(http.Handler) http.Handler) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handleNoRoute)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	api := r
	if basePath = "/" + strings.Trim(basePath, "/"); basePath != "/" {
		api = r.PathPrefix(basePath).Subrouter()
		api.NotFoundHandler = r.NotFoundHandler
		api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	}

	api.HandleFunc("/resources/", h.ListResources).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/resources/", h.CreateResource).Methods(http.MethodPost)
	api.HandleFunc("/resources/"+idPattern+"/", h.GetResource).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/resources/"+idPattern+"/", h.ReplaceResource).Methods(http.MethodPut)
	api.HandleFunc("/resources/"+idPattern+"/", h.UpdateResource).Methods(http.MethodPatch)
	api.HandleFunc("/resources/"+idPattern+"/", h.DeleteResource).Methods(http.MethodDelete)
	api.HandleFunc("/resources/"+idPattern+"/images/", h.UploadImage).Methods(http.MethodPost)
	api.HandleFunc("/images/"+idPattern+"/", h.DeleteImage).Methods(http.MethodDelete)
	api.HandleFunc("/tags/", h.ListTags).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc(basePathMedia+"{key:.+}", h.GetMedia).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/healthz", h.GetHealth).Methods(http.MethodGet, http.MethodHead)

	var handler http.Handler = r
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

func handleNoRoute(w http.ResponseWriter, r *http.Request) {
	HandleErrorResponse(w, r, NewNotFoundError(nil, common.Error404Detail))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	HandleErrorResponse(w, r, &BaseHttpError{
		Status: http.StatusMethodNotAllowed,
		Detail: fmt.Sprintf(common.Error405Detail, r.Method),
	})
}
