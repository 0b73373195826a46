package formbind

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formbind/pkg/openapi"
)

const contactDocument = `
openapi: 3.0.3
info: {title: Contact, version: "1"}
paths:
  /contact:
    post:
      operationId: sendContact
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              properties:
                email: {type: string}
                age: {type: integer}
      responses:
        "204": {description: sent}
`

const contactManifest = `
operations:
  sendContact:
    path: /contact
    params:
      - {name: email, kind: string}
      - {name: age, kind: integer}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadManifest_Sources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	openapiPath := writeFile(t, dir, "openapi.yaml", contactDocument)
	manifestDir := filepath.Join(dir, "manifests")
	if err := os.Mkdir(manifestDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifestPath := writeFile(t, manifestDir, "contact.yaml", contactManifest)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(contactDocument))
	}))
	t.Cleanup(srv.Close)

	for _, location := range []string{openapiPath, manifestPath, manifestDir, srv.URL} {
		m, err := LoadManifest(ctx, location, pkgopenapi.WithHTTPClient(srv.Client()))
		if err != nil {
			t.Fatalf("%s: %v", location, err)
		}
		op, ok := m.Operation("sendContact")
		if !ok {
			t.Fatalf("%s: missing sendContact", location)
		}
		var names []string
		for _, p := range op.Params {
			names = append(names, p.Name)
		}
		if diff := cmp.Diff([]string{"age", "email"}, sortedCopy(names)); diff != "" {
			t.Fatalf("%s: params mismatch (-want +got):\n%s", location, diff)
		}
	}

	if m, err := LoadManifest(ctx, ""); err != nil || m.Len() != 0 {
		t.Fatalf("expected empty manifest, got %v %v", m, err)
	}
	if _, err := LoadManifest(ctx, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
