package openapi

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/manifest"
)

// ExtensionSanitize names the schema extension carrying a sanitize policy for
// string properties.
const ExtensionSanitize = "x-formbind-sanitize"

// Parser derives a binding manifest from an OpenAPI document.
type Parser interface {
	Manifest(ctx context.Context, doc Document) (*manifest.Manifest, error)
}

// ParserOptions controls how operations are converted.
type ParserOptions struct {
	// ValidateDocument runs kin-openapi validation before conversion.
	ValidateDocument bool

	// SkipUnsupported drops properties whose schema cannot bind (objects,
	// nested arrays) instead of failing the whole document.
	SkipUnsupported bool

	// DefaultSanitize applies a sanitize policy to string properties that do
	// not declare one.
	DefaultSanitize string
}

type ParserOption func(*ParserOptions)

func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

func WithSkipUnsupported(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.SkipUnsupported = enabled
	}
}

func WithDefaultSanitize(policy string) ParserOption {
	return func(opts *ParserOptions) {
		opts.DefaultSanitize = policy
	}
}

func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ValidateDocument: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
