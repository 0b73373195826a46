package operations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/manifest"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func notesManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m := manifest.New()
	ops := []manifest.Operation{
		{
			ID:   "createNote",
			Path: "/notes",
			Params: binding.Params{
				binding.String("title"),
				binding.Integer("priority"),
				binding.List("tags", binding.KindString),
			},
		},
		{
			ID:     "listNotes",
			Method: http.MethodGet,
			Path:   "/notes",
			Params: binding.Params{binding.Boolean("draft", binding.FromQuery())},
		},
	}
	for _, op := range ops {
		if err := m.Add(op); err != nil {
			t.Fatalf("add %s: %v", op.ID, err)
		}
	}
	return m
}

func TestRegisterRoutes_BindsOperations(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	patterns, err := RegisterRoutes(mux, "/api", notesManifest(t))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if diff := cmp.Diff([]string{"POST /api/notes", "GET /api/notes"}, patterns); diff != "" {
		t.Fatalf("patterns mismatch (-want +got):\n%s", diff)
	}

	body := testsupport.NewForm().Value("title", "hi").Value("tags", "a", "b").Encode()
	req := testsupport.NewFormRequest(http.MethodPost, "/api/notes", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Result{
		Operation: "createNote",
		Values: map[string]any{
			"title":    "hi",
			"priority": nil,
			"tags":     []any{"a", "b"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes?draft", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected present-without-value query to fail with 400, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Errors(t *testing.T) {
	t.Parallel()

	if _, err := RegisterRoutes(nil, "", manifest.New()); err == nil {
		t.Fatalf("expected missing mux error")
	}

	m := manifest.New()
	_ = m.Add(manifest.Operation{ID: "a", Path: "/same"})
	_ = m.Add(manifest.Operation{ID: "b", Path: "/same"})
	if _, err := RegisterRoutes(http.NewServeMux(), "", m); err == nil {
		t.Fatalf("expected duplicate pattern error")
	}
}
