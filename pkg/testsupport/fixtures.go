// Package testsupport holds helpers shared by the binding, component, and
// OpenAPI tests: form bodies with explicit field presence, request helpers,
// and document fixtures.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/internal/formdata"
	"github.com/goliatone/go-formbind/pkg/binding"
	pkgopenapi "github.com/goliatone/go-formbind/pkg/openapi"
)

// Form builds urlencoded bodies that keep absent, no-value, and empty fields
// apart. The zero value is an empty form.
type Form struct {
	set binding.FieldSet
}

func NewForm() *Form {
	return &Form{}
}

// NoValue adds name as a bare key.
func (f *Form) NoValue(name string) *Form {
	f.set.Mark(name)
	return f
}

// Empty adds name with the empty string.
func (f *Form) Empty(name string) *Form {
	return f.Value(name, "")
}

// Value appends each value under name.
func (f *Form) Value(name string, values ...string) *Form {
	f.set.Mark(name)
	for _, v := range values {
		f.set.Add(name, v)
	}
	return f
}

func (f *Form) Fields() binding.FieldSet {
	return f.set
}

func (f *Form) Encode() string {
	return formdata.EncodeURLEncoded(f.set)
}

// NewFormRequest builds a request carrying body as an urlencoded form. An
// empty body is sent without a content type.
func NewFormRequest(method, target, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", formdata.MediaTypeURLEncoded)
	return req
}

// Serve runs req through h and returns the status and body.
func Serve(t *testing.T, h http.Handler, req *http.Request) (int, string) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, string(data)
}

// Document wraps an inline OpenAPI payload. location only labels the source.
func Document(t *testing.T, location, raw string) pkgopenapi.Document {
	t.Helper()

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(location), []byte(raw))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

// LoadDocument reads a fixture file and builds a Document with a file source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// Diff returns a diff string if the values differ.
func Diff(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
