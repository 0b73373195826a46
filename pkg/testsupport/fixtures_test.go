package testsupport

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestForm_Encode(t *testing.T) {
	t.Parallel()

	body := NewForm().NoValue("a").Empty("b").Value("c", "x y", "z").Encode()
	if body != "a&b=&c=x+y&c=z" {
		t.Fatalf("unexpected body %q", body)
	}
	if NewForm().Encode() != "" {
		t.Fatalf("expected empty body for empty form")
	}
}

func TestNewFormRequest(t *testing.T) {
	t.Parallel()

	if ct := NewFormRequest(http.MethodPost, "/", "a=1").Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if ct := NewFormRequest(http.MethodPost, "/", "").Header.Get("Content-Type"); ct != "" {
		t.Fatalf("expected no content type, got %q", ct)
	}
}

func TestLoadDocumentFromPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc := LoadDocument(t, path)
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if _, err := LoadDocumentFromPath(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
