package nullform

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/httpbind"
)

type Options struct {
	RoutePath      string
	BeanPath       string
	DirectPath     string
	MaxBodyBytes   int64
	ProblemDetails bool
	Logger         *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:  "/null",
		BeanPath:   "/bean",
		DirectPath: "/direct",
		Logger:     zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/null"
	}
	if opts.BeanPath == "" {
		opts.BeanPath = "/bean"
	}
	if opts.DirectPath == "" {
		opts.DirectPath = "/direct"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithProblemDetails(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ProblemDetails = enabled
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func (o Options) bindOptions() []httpbind.OptionFn {
	return []httpbind.OptionFn{
		httpbind.WithMaxBodyBytes(o.MaxBodyBytes),
		httpbind.WithProblemDetails(o.ProblemDetails),
		httpbind.WithLogger(o.Logger),
	}
}
