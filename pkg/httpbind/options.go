package httpbind

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/formdata"
)

// Options configures request decoding and failure responses.
type Options struct {
	MaxBodyBytes   int64
	ProblemDetails bool
	Logger         *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		MaxBodyBytes: formdata.DefaultMaxBytes,
		Logger:       zap.NewNop(),
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
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = formdata.DefaultMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithProblemDetails switches failure bodies from plain status text to a JSON
// document listing the failing parameters.
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
