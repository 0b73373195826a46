package manifest

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/binding"
)

const notesYAML = `
operations:
  createNote:
    path: /notes
    summary: Create a note
    params:
      - name: title
        kind: string
        sanitize: strict
      - name: priority
        kind: integer
      - name: tags
        kind: string
        multi: true
      - name: X-Tenant
        kind: uuid
        source: header
        required: true
`

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(notesYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	op, ok := m.Operation("createNote")
	if !ok {
		t.Fatalf("expected createNote operation")
	}

	want := Operation{
		ID:      "createNote",
		Method:  "POST",
		Path:    "/notes",
		Summary: "Create a note",
		Params: binding.Params{
			{Name: "title", Kind: binding.KindString, Source: binding.SourceForm, Sanitize: "strict"},
			{Name: "priority", Kind: binding.KindInteger, Source: binding.SourceForm},
			{Name: "tags", Kind: binding.KindString, Source: binding.SourceForm, Multi: true},
			{Name: "X-Tenant", Kind: binding.KindUUID, Source: binding.SourceHeader, Required: true},
		},
	}
	if diff := cmp.Diff(want, op); diff != "" {
		t.Fatalf("operation mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	m, err := Parse([]byte(`{"operations":{"ping":{"method":"get","params":[{"name":"q","kind":"string","source":"query"}]}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	op, _ := m.Operation("ping")
	if op.Method != "GET" || op.Path != "/ping" {
		t.Fatalf("unexpected defaults %s %s", op.Method, op.Path)
	}
	if op.Params[0].Source != binding.SourceQuery {
		t.Fatalf("unexpected source %q", op.Params[0].Source)
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":        "   ",
		"kind":         "operations:\n  a:\n    params:\n      - {name: x, kind: decimal}\n",
		"source":       "operations:\n  a:\n    params:\n      - {name: x, kind: string, source: cookie}\n",
		"duplicate":    "operations:\n  a:\n    params:\n      - {name: x, kind: string}\n      - {name: x, kind: integer, source: query}\n",
		"method":       "operations:\n  a:\n    method: TRACE\n",
		"sanitize":     "operations:\n  a:\n    params:\n      - {name: x, kind: integer, sanitize: strict}\n",
		"invalid yaml": "operations: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"notes.yaml":   {Data: []byte(notesYAML)},
		"ping.json":    {Data: []byte(`{"operations":{"ping":{"method":"GET"}}}`)},
		"README.md":    {Data: []byte("ignored")},
		"nested/x.yml": {Data: []byte("operations:\n  other:\n    path: other\n")},
	}
	m, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"createNote", "other", "ping"}, m.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if op, _ := m.Operation("other"); op.Path != "/other" {
		t.Fatalf("expected leading slash, got %q", op.Path)
	}

	fsys["dupe.yaml"] = &fstest.MapFile{Data: []byte("operations:\n  ping: {}\n")}
	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate operation") {
		t.Fatalf("expected duplicate operation error, got %v", err)
	}

	empty, err := LoadFS(nil)
	if err != nil || empty.Len() != 0 {
		t.Fatalf("expected empty manifest, got %v %v", empty, err)
	}
}
