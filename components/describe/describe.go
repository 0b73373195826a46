// Package describe serves an endpoint that reports the request it received as
// client.RequestData JSON. It lets header-binding clients observe exactly what
// they sent.
package describe

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formbind/pkg/client"
	"github.com/goliatone/go-formbind/pkg/httpbind"
)

const DefaultRoutePath = "/describe-request"

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Handler answers GET and HEAD requests with the caller's method, path, and
// headers.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		data := Describe(r)
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			return
		}
		httpbind.WriteJSON(w, http.StatusOK, data)
	})
}

// Describe captures r as RequestData.
func Describe(r *http.Request) client.RequestData {
	headers := make(map[string][]string, len(r.Header))
	for name, values := range r.Header {
		headers[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}
	return client.RequestData{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: headers,
	}
}

// RegisterRoutes mounts the handler at basePath + DefaultRoutePath.
func RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("describe: missing mux")
	}
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	pattern := basePath + DefaultRoutePath
	mux.Handle(pattern, Handler())
	return pattern, nil
}
