package openapi

import "errors"

var (
	ErrNoSource      = errors.New("openapi: source is required")
	ErrEmptyDocument = errors.New("openapi: document is empty")
)

// Document is an immutable OpenAPI payload tagged with where it was read
// from. Parsers report errors against Location.
type Document struct {
	source Source
	raw    []byte
}

func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, ErrNoSource
	case len(raw) == 0:
		return Document{}, ErrEmptyDocument
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}
