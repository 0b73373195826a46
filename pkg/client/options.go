package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type Options struct {
	HTTPClient    *http.Client
	Headers       []HeaderParam
	Factory       HeadersFactory
	Properties    PropertySource
	TokenSource   oauth2.TokenSource
	RetryAttempts uint
	RetryDelay    time.Duration
	Logger        *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RetryAttempts: 3,
		RetryDelay:    100 * time.Millisecond,
		Logger:        zap.NewNop(),
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
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Headers != nil {
		opts.Headers = append([]HeaderParam{}, opts.Headers...)
	}
	return opts
}

func WithHTTPClient(c *http.Client) OptionFn {
	return func(o *Options) {
		o.HTTPClient = c
	}
}

// WithHeaders declares client-level headers applied to every method.
func WithHeaders(headers ...HeaderParam) OptionFn {
	return func(o *Options) {
		o.Headers = append(o.Headers, headers...)
	}
}

// WithHeadersFactory registers the factory consulted after declarative
// headers.
func WithHeadersFactory(f HeadersFactory) OptionFn {
	return func(o *Options) {
		o.Factory = f
	}
}

func WithProperties(props PropertySource) OptionFn {
	return func(o *Options) {
		o.Properties = props
	}
}

// WithTokenSource authenticates every call with a bearer token.
func WithTokenSource(ts oauth2.TokenSource) OptionFn {
	return func(o *Options) {
		o.TokenSource = ts
	}
}

// WithRetry sets how many times transient failures are attempted in total.
func WithRetry(attempts uint, delay time.Duration) OptionFn {
	return func(o *Options) {
		o.RetryAttempts = attempts
		o.RetryDelay = delay
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}
