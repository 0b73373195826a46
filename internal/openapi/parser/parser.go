package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/manifest"
	pkgopenapi "github.com/goliatone/go-formbind/pkg/openapi"
)

// formMediaTypes lists the request body encodings whose properties bind as
// form fields, in order of preference.
var formMediaTypes = []string{"application/x-www-form-urlencoded", "multipart/form-data"}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Manifest converts every GET, POST, PUT, PATCH, and DELETE operation in doc
// into a manifest operation keyed by operationId.
func (p *Parser) Manifest(ctx context.Context, doc pkgopenapi.Document) (*manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	api, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	out := manifest.New()
	if api.Paths == nil {
		return out, nil
	}

	paths := api.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			operation := item.GetOperation(method)
			if operation == nil {
				continue
			}
			op, err := p.convertOperation(method, path, item.Parameters, operation)
			if err != nil {
				return nil, err
			}
			if err := out.Add(op); err != nil {
				return nil, fmt.Errorf("openapi parser: %w", err)
			}
		}
	}
	return out, nil
}

func (p *Parser) convertOperation(method, path string, shared openapi3.Parameters, operation *openapi3.Operation) (manifest.Operation, error) {
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	var params []binding.Param
	body, err := p.bodyParams(operation.RequestBody)
	if err != nil {
		return manifest.Operation{}, fmt.Errorf("openapi parser: operation %q: %w", id, err)
	}
	params = append(params, body...)

	declared, err := p.parameterParams(mergeParameters(shared, operation.Parameters))
	if err != nil {
		return manifest.Operation{}, fmt.Errorf("openapi parser: operation %q: %w", id, err)
	}
	params = append(params, declared...)

	return manifest.Operation{
		ID:      id,
		Method:  method,
		Path:    path,
		Summary: operation.Summary,
		Params:  params,
	}, nil
}

func (p *Parser) bodyParams(body *openapi3.RequestBodyRef) ([]binding.Param, error) {
	if body == nil || body.Value == nil {
		return nil, nil
	}
	var media *openapi3.MediaType
	for _, name := range formMediaTypes {
		if mt := body.Value.Content.Get(name); mt != nil {
			media = mt
			break
		}
	}
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, nil
	}

	properties, required := collectProperties(media.Schema.Value)
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]binding.Param, 0, len(names))
	for _, name := range names {
		param, ok, err := p.convertSchema(name, binding.SourceForm, properties[name])
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		_, param.Required = required[name]
		out = append(out, param)
	}
	return out, nil
}

func (p *Parser) parameterParams(params openapi3.Parameters) ([]binding.Param, error) {
	var out []binding.Param
	for _, ref := range params {
		if ref == nil || ref.Value == nil {
			continue
		}
		value := ref.Value

		var source binding.Source
		switch value.In {
		case openapi3.ParameterInQuery:
			source = binding.SourceQuery
		case openapi3.ParameterInHeader:
			source = binding.SourceHeader
		default:
			continue
		}

		param, ok, err := p.convertSchema(value.Name, source, value.Schema)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		param.Required = value.Required
		if policy, ok := sanitizeExtension(value.Extensions); ok && param.Kind == binding.KindString {
			param.Sanitize = policy
		}
		out = append(out, param)
	}
	return out, nil
}

// convertSchema maps a property schema onto a Param. ok is false when the
// schema cannot bind and unsupported properties are skipped.
func (p *Parser) convertSchema(name string, source binding.Source, ref *openapi3.SchemaRef) (binding.Param, bool, error) {
	param := binding.Param{Name: name, Kind: binding.KindString, Source: source}
	if ref == nil || ref.Value == nil {
		return p.withSanitize(param, nil), true, nil
	}
	schema := ref.Value

	if schemaType(schema) == openapi3.TypeArray {
		if schema.Items == nil || schema.Items.Value == nil {
			param.Multi = true
			return p.withSanitize(param, nil), true, nil
		}
		schema = schema.Items.Value
		param.Multi = true
	}

	kind, ok := scalarKind(schema)
	if !ok {
		if p.options.SkipUnsupported {
			return binding.Param{}, false, nil
		}
		return binding.Param{}, false, fmt.Errorf("property %q has unsupported schema type %q", name, schemaType(schema))
	}
	param.Kind = kind
	if kind != binding.KindString {
		return param, true, nil
	}
	return p.withSanitize(param, schema), true, nil
}

func (p *Parser) withSanitize(param binding.Param, schema *openapi3.Schema) binding.Param {
	if schema != nil {
		if policy, ok := sanitizeExtension(schema.Extensions); ok {
			param.Sanitize = policy
			return param
		}
	}
	if p.options.DefaultSanitize != "" && param.Source != binding.SourceHeader {
		param.Sanitize = p.options.DefaultSanitize
	}
	return param
}

func scalarKind(schema *openapi3.Schema) (binding.Kind, bool) {
	switch schemaType(schema) {
	case "", openapi3.TypeString:
		if schema.Format == "uuid" {
			return binding.KindUUID, true
		}
		return binding.KindString, true
	case openapi3.TypeInteger:
		if schema.Format == "int64" {
			return binding.KindLong, true
		}
		return binding.KindInteger, true
	case openapi3.TypeNumber:
		return binding.KindNumber, true
	case openapi3.TypeBoolean:
		return binding.KindBoolean, true
	default:
		return "", false
	}
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil {
		return ""
	}
	for _, t := range schema.Type.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	return ""
}

// collectProperties flattens properties declared directly and through allOf.
func collectProperties(schema *openapi3.Schema) (map[string]*openapi3.SchemaRef, map[string]struct{}) {
	properties := make(map[string]*openapi3.SchemaRef)
	required := make(map[string]struct{})
	var walk func(s *openapi3.Schema)
	walk = func(s *openapi3.Schema) {
		if s == nil {
			return
		}
		for name, prop := range s.Properties {
			if _, exists := properties[name]; !exists {
				properties[name] = prop
			}
		}
		for _, name := range s.Required {
			required[name] = struct{}{}
		}
		for _, ref := range s.AllOf {
			if ref != nil {
				walk(ref.Value)
			}
		}
	}
	walk(schema)
	return properties, required
}

// mergeParameters applies operation parameters over path-level ones that
// share the same name and location.
func mergeParameters(shared, own openapi3.Parameters) openapi3.Parameters {
	if len(shared) == 0 {
		return own
	}
	out := make(openapi3.Parameters, 0, len(shared)+len(own))
	for _, ref := range shared {
		if ref == nil || ref.Value == nil {
			continue
		}
		if own.GetByInAndName(ref.Value.In, ref.Value.Name) != nil {
			continue
		}
		out = append(out, ref)
	}
	return append(out, own...)
}

func sanitizeExtension(extensions map[string]any) (string, bool) {
	raw, ok := extensions[pkgopenapi.ExtensionSanitize]
	if !ok {
		return "", false
	}
	policy, ok := raw.(string)
	policy = strings.TrimSpace(policy)
	return policy, ok && policy != ""
}
