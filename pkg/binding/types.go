package binding

import (
	"fmt"
	"net/textproto"
	"strings"
)

// Kind is the scalar type a parameter coerces its raw values into.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindLong    Kind = "long"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindUUID    Kind = "uuid"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindInteger, KindLong, KindNumber, KindBoolean, KindUUID:
		return true
	default:
		return false
	}
}

// Source identifies which part of the request a parameter is read from.
type Source string

const (
	SourceForm   Source = "form"
	SourceQuery  Source = "query"
	SourceHeader Source = "header"
)

// Valid reports whether s is a supported source.
func (s Source) Valid() bool {
	switch s {
	case SourceForm, SourceQuery, SourceHeader:
		return true
	default:
		return false
	}
}

// Param declares a single binding target. The zero Source means SourceForm.
type Param struct {
	Name     string `json:"name" yaml:"name"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Source   Source `json:"source,omitempty" yaml:"source,omitempty"`
	Multi    bool   `json:"multi,omitempty" yaml:"multi,omitempty"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Sanitize string `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
}

// ParamOption mutates a Param during construction.
type ParamOption func(*Param)

// FromQuery reads the parameter from the URL query string.
func FromQuery() ParamOption {
	return func(p *Param) {
		p.Source = SourceQuery
	}
}

// FromHeader reads the parameter from request headers.
func FromHeader() ParamOption {
	return func(p *Param) {
		p.Source = SourceHeader
	}
}

// Required turns an absent field into a binding failure.
func Required() ParamOption {
	return func(p *Param) {
		p.Required = true
	}
}

// Sanitize applies a named HTML sanitisation policy to string values. See
// SanitizePolicies for the supported names.
func Sanitize(policy string) ParamOption {
	return func(p *Param) {
		p.Sanitize = policy
	}
}

// NewParam builds a Param of the given kind.
func NewParam(name string, kind Kind, opts ...ParamOption) Param {
	p := Param{Name: strings.TrimSpace(name), Kind: kind, Source: SourceForm}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&p)
	}
	return p
}

func String(name string, opts ...ParamOption) Param  { return NewParam(name, KindString, opts...) }
func Integer(name string, opts ...ParamOption) Param { return NewParam(name, KindInteger, opts...) }
func Long(name string, opts ...ParamOption) Param    { return NewParam(name, KindLong, opts...) }
func Number(name string, opts ...ParamOption) Param  { return NewParam(name, KindNumber, opts...) }
func Boolean(name string, opts ...ParamOption) Param { return NewParam(name, KindBoolean, opts...) }
func UUID(name string, opts ...ParamOption) Param    { return NewParam(name, KindUUID, opts...) }

// List declares a multi-valued parameter whose values all coerce to kind.
func List(name string, kind Kind, opts ...ParamOption) Param {
	p := NewParam(name, kind, opts...)
	p.Multi = true
	return p
}

func (p Param) source() Source {
	if p.Source == "" {
		return SourceForm
	}
	return p.Source
}

// lookupName returns the key used to find the parameter in its FieldSet.
// Header names are canonicalised the same way net/http stores them.
func (p Param) lookupName() string {
	if p.source() == SourceHeader {
		return textproto.CanonicalMIMEHeaderKey(p.Name)
	}
	return p.Name
}

// Validate checks the declaration itself, independent of any request.
func (p Param) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("binding: parameter name is required")
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("binding: parameter %q has unsupported kind %q", p.Name, p.Kind)
	}
	if !p.source().Valid() {
		return fmt.Errorf("binding: parameter %q has unsupported source %q", p.Name, p.Source)
	}
	if p.Sanitize != "" {
		if p.Kind != KindString {
			return fmt.Errorf("binding: parameter %q: sanitize requires kind %q", p.Name, KindString)
		}
		if _, ok := sanitizer(p.Sanitize); !ok {
			return fmt.Errorf("binding: parameter %q has unknown sanitize policy %q", p.Name, p.Sanitize)
		}
	}
	return nil
}

// Params is an ordered, validated parameter manifest.
type Params []Param

// NewParams validates the declarations and rejects duplicate names. Names
// must be unique across sources so bound values can be looked up by name.
func NewParams(params ...Param) (Params, error) {
	seen := make(map[string]struct{}, len(params))
	out := make(Params, 0, len(params))
	for _, p := range params {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := seen[p.Name]; exists {
			return nil, fmt.Errorf("binding: duplicate parameter %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		p.Source = p.source()
		out = append(out, p)
	}
	return out, nil
}

// MustParams panics when NewParams fails. Intended for package-level manifests.
func MustParams(params ...Param) Params {
	out, err := NewParams(params...)
	if err != nil {
		panic(err)
	}
	return out
}

// Sources reports which request sources the manifest reads from.
func (ps Params) Sources() []Source {
	var out []Source
	seen := make(map[Source]struct{}, 3)
	for _, p := range ps {
		src := p.source()
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}
