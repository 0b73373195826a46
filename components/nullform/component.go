package nullform

import "net/http"

// Component wraps the null-form handlers, their configuration, and routing.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

func (c *Component) BeanHandler() http.Handler {
	if c == nil {
		return BeanHandler()
	}
	return BeanHandlerWithOptions(c.opts)
}

func (c *Component) DirectHandler() http.Handler {
	if c == nil {
		return DirectHandler()
	}
	return DirectHandlerWithOptions(c.opts)
}

// RegisterRoutes registers both endpoints under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
