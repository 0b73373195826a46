package nullform

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingMux struct {
	patterns []string
}

func (m *recordingMux) Handle(pattern string, _ http.Handler) {
	m.patterns = append(m.patterns, pattern)
}

func TestRegisterRoutes_MountsUnderBasePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base string
		opts []OptionFn
		want []string
	}{
		{base: "", want: []string{"/null/bean", "/null/direct"}},
		{base: "/", want: []string{"/null/bean", "/null/direct"}},
		{base: "api/", want: []string{"/api/null/bean", "/api/null/direct"}},
		{base: "/api", opts: []OptionFn{WithRoutePath("forms")}, want: []string{"/api/forms/bean", "/api/forms/direct"}},
	}
	for _, tc := range cases {
		mux := &recordingMux{}
		got, err := New(tc.opts...).RegisterRoutes(mux, tc.base)
		if err != nil {
			t.Fatalf("base %q: register: %v", tc.base, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("base %q: returned patterns (-want +got):\n%s", tc.base, diff)
		}
		if diff := cmp.Diff(tc.want, mux.patterns); diff != "" {
			t.Fatalf("base %q: registered patterns (-want +got):\n%s", tc.base, diff)
		}
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	t.Parallel()

	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestManifest_DescribesEndpoints(t *testing.T) {
	t.Parallel()

	m := Manifest()
	direct, ok := m.Operation(OperationDirect)
	if !ok || direct.Path != "/null/direct" || direct.Method != http.MethodPost {
		t.Fatalf("unexpected direct operation %#v", direct)
	}
	bean, ok := m.Operation(OperationBean)
	if !ok || bean.Path != "/null/bean" || len(bean.Params) != 2 {
		t.Fatalf("unexpected bean operation %#v", bean)
	}
}
