package openapi

import (
	"errors"
	"testing"
)

func TestSourceFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		location string
		kind     SourceKind
		want     string
	}{
		{location: "https://example.com/api.yaml", kind: SourceKindURL, want: "https://example.com/api.yaml"},
		{location: "specs/../api.yaml", kind: SourceKindFile, want: "api.yaml"},
	}
	for _, tc := range cases {
		src, err := SourceFor(tc.location)
		if err != nil {
			t.Fatalf("%s: %v", tc.location, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.want {
			t.Fatalf("%s: got %s %q", tc.location, src.Kind(), src.Location())
		}
	}

	for _, bad := range []string{"", "   ", "http://"} {
		if _, err := SourceFor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	if _, err := ParseURLSource("ftp://example.com/api.yaml"); err == nil {
		t.Fatalf("expected scheme error")
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	if _, err := NewDocument(nil, []byte("x")); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	if _, err := NewDocument(SourceFromFS("api.yaml"), nil); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	raw := []byte("openapi: 3.0.3")
	doc, err := NewDocument(SourceFromFS("api.yaml"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	raw[0] = 'X'
	got := doc.Raw()
	got[1] = 'X'
	if string(doc.Raw()) != "openapi: 3.0.3" {
		t.Fatalf("document payload was mutated: %q", doc.Raw())
	}
	if doc.Location() != "api.yaml" || (Document{}).Location() != "" {
		t.Fatalf("unexpected locations")
	}
}

func TestNewLoaderOptions(t *testing.T) {
	t.Parallel()

	opts := NewLoaderOptions(nil, WithMaxBytes(10), WithHTTPFallback(0))
	if opts.MaxBytes != 10 || !opts.AllowHTTPFallback || opts.Logger == nil {
		t.Fatalf("unexpected options %+v", opts)
	}
}
