package openapi

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrDocumentTooLarge is returned when a source is bigger than
// LoaderOptions.MaxBytes.
var ErrDocumentTooLarge = errors.New("openapi: document too large")

// Loader reads the raw document behind a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures a Loader. URL sources are refused unless an HTTP
// client is supplied or WithHTTPFallback is set.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	// MaxBytes caps every source kind; zero disables the cap.
	MaxBytes int64
	Logger   *zap.Logger
}

type LoaderOption func(*LoaderOptions)

// WithFileSystem sets the fs.FS that SourceFromFS locations resolve against.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback allows URL sources through a default client bounded by
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

func WithMaxBytes(n int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxBytes = n
	}
}

// WithLoaderLogger records each load at debug level.
func WithLoaderLogger(logger *zap.Logger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Logger = logger
	}
}

func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var cfg LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
