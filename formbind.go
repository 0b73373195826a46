// Package formbind binds HTML form, query, and header parameters onto typed
// values while keeping absent, present-without-value, and empty fields
// distinct. The root package wires the OpenAPI loader and parser so callers
// can derive binding manifests without importing internal packages.
package formbind

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	internalLoader "github.com/goliatone/go-formbind/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formbind/internal/openapi/parser"
	"github.com/goliatone/go-formbind/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-formbind/pkg/openapi"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// ManifestFromOpenAPI loads src and derives its binding manifest.
func ManifestFromOpenAPI(ctx context.Context, src pkgopenapi.Source, parserOptions []pkgopenapi.ParserOption, loaderOptions ...pkgopenapi.LoaderOption) (*manifest.Manifest, error) {
	doc, err := NewLoader(loaderOptions...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return NewParser(parserOptions...).Manifest(ctx, doc)
}

// LoadManifest reads a manifest from a directory of manifest files, a single
// manifest file, an OpenAPI file, or an http(s) URL serving an OpenAPI
// document. Files with a top-level "openapi" key are parsed as OpenAPI.
func LoadManifest(ctx context.Context, location string, loaderOptions ...pkgopenapi.LoaderOption) (*manifest.Manifest, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return manifest.New(), nil
	}

	src, err := pkgopenapi.SourceFor(location)
	if err != nil {
		return nil, err
	}
	if src.Kind() == pkgopenapi.SourceKindURL {
		return ManifestFromOpenAPI(ctx, src, nil, loaderOptions...)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("formbind: manifest %s: %w", location, err)
	}
	if info.IsDir() {
		return manifest.LoadFS(os.DirFS(location))
	}

	data, err := os.ReadFile(filepath.Clean(location))
	if err != nil {
		return nil, fmt.Errorf("formbind: manifest %s: %w", location, err)
	}
	if isOpenAPI(data) {
		doc, err := pkgopenapi.NewDocument(src, data)
		if err != nil {
			return nil, err
		}
		return NewParser().Manifest(ctx, doc)
	}
	return manifest.Parse(data)
}

func isOpenAPI(data []byte) bool {
	var probe struct {
		OpenAPI string `json:"openapi" yaml:"openapi"`
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &probe); err == nil {
			return probe.OpenAPI != ""
		}
	}
	if err := yaml.Unmarshal(trimmed, &probe); err != nil {
		return false
	}
	return probe.OpenAPI != ""
}
