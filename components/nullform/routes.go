package nullform

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPaths returns the bean and direct paths under basePath.
func MountPaths(basePath string, fns ...OptionFn) (bean, direct string) {
	opts := NewOptions(fns...)
	root := mountPath(basePath, opts.RoutePath)
	return joinRoute(root, opts.BeanPath), joinRoute(root, opts.DirectPath)
}

// RegisterRoutes registers both endpoints under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers both endpoints using a pre-built Options
// value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("nullform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	beanPath, directPath := MountPaths(basePath, func(o *Options) { *o = opts })

	mux.Handle(beanPath, BeanHandlerWithOptions(opts))
	mux.Handle(directPath, DirectHandlerWithOptions(opts))
	return []string{beanPath, directPath}, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}

func joinRoute(root, leaf string) string {
	leaf = strings.TrimSpace(leaf)
	if !strings.HasPrefix(leaf, "/") {
		leaf = "/" + leaf
	}
	return strings.TrimRight(root, "/") + leaf
}
