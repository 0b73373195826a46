// Package operations mounts every operation of a binding manifest as an HTTP
// endpoint that binds its parameters and echoes the bound values as JSON.
// Absent fields are reported as null.
package operations

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/httpbind"
	"github.com/goliatone/go-formbind/pkg/manifest"
)

// Mux is satisfied by *http.ServeMux. Patterns carry the HTTP method.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Result is the response body of a successful binding.
type Result struct {
	Operation string         `json:"operation"`
	Values    map[string]any `json:"values"`
}

// Handler binds op's parameters and writes a Result.
func Handler(op manifest.Operation, fns ...httpbind.OptionFn) http.Handler {
	return httpbind.DirectHandler(op.Params, func(w http.ResponseWriter, r *http.Request, args []binding.Value) {
		values := make(map[string]any, len(args))
		for _, arg := range args {
			values[arg.Name] = arg.Interface()
		}
		httpbind.WriteJSON(w, http.StatusOK, Result{Operation: op.ID, Values: values})
	}, fns...)
}

// Pattern returns the method-qualified mux pattern for op under basePath.
func Pattern(basePath string, op manifest.Operation) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return op.Method + " " + basePath + op.Path
}

// RegisterRoutes mounts every operation of m in id order and returns the
// registered patterns.
func RegisterRoutes(mux Mux, basePath string, m *manifest.Manifest, fns ...httpbind.OptionFn) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("operations: missing mux")
	}
	seen := make(map[string]string, m.Len())
	patterns := make([]string, 0, m.Len())
	for _, id := range m.IDs() {
		op, _ := m.Operation(id)
		pattern := Pattern(basePath, op)
		if other, dup := seen[pattern]; dup {
			return nil, fmt.Errorf("operations: %q and %q both map to %s", other, id, pattern)
		}
		seen[pattern] = id
		mux.Handle(pattern, Handler(op, fns...))
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}
