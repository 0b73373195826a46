package nullform

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func post(t *testing.T, endpoint, body string) (int, string) {
	t.Helper()

	mux := http.NewServeMux()
	if _, err := RegisterRoutes(mux, ""); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return testsupport.Serve(t, mux, testsupport.NewFormRequest(http.MethodPost, "/null/"+endpoint, body))
}

var endpoints = []string{"bean", "direct"}

func TestEmptyRequest(t *testing.T) {
	for _, endpoint := range endpoints {
		status, body := post(t, endpoint, "")
		if status != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", endpoint, status)
		}
		if body != "null,null" {
			t.Fatalf("%s: expected body %q, got %q", endpoint, "null,null", body)
		}
	}
}

func TestPresentInRequestButNoValue(t *testing.T) {
	for _, endpoint := range endpoints {
		if status, _ := post(t, endpoint, "formString&formInteger"); status != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", endpoint, status)
		}
	}
}

func TestStringEmptyIntegerNoValue(t *testing.T) {
	for _, endpoint := range endpoints {
		if status, _ := post(t, endpoint, "formString=&formInteger"); status != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", endpoint, status)
		}
	}
}

func TestBothEmpty(t *testing.T) {
	for _, endpoint := range endpoints {
		if status, _ := post(t, endpoint, "formString=&formInteger="); status != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", endpoint, status)
		}
	}
}

func TestBeanAndDirectRespondIdentically(t *testing.T) {
	bodies := []string{
		"",
		"formString",
		"formInteger",
		"formString=",
		"formString=&formInteger",
		"formString=&formInteger=",
		"formString=hello",
		"formInteger=12",
		"formString=hello+world&formInteger=-3",
		"formInteger=1&formInteger=2",
		"formInteger=twelve",
		"unrelated=1",
	}
	for _, body := range bodies {
		beanStatus, beanBody := post(t, "bean", body)
		directStatus, directBody := post(t, "direct", body)
		if beanStatus != directStatus || beanBody != directBody {
			t.Fatalf("body %q: bean %d %q, direct %d %q", body, beanStatus, beanBody, directStatus, directBody)
		}
	}
}

func TestStringOnlyAndValues(t *testing.T) {
	cases := map[string]string{
		"formString=":                           ",null",
		"formInteger=7":                         "null,7",
		"formString=hello+world&formInteger=-3": "hello world,-3",
	}
	for body, want := range cases {
		for _, endpoint := range endpoints {
			status, got := post(t, endpoint, body)
			if status != http.StatusOK || got != want {
				t.Fatalf("%s %q: expected 200 %q, got %d %q", endpoint, body, want, status, got)
			}
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	for _, h := range []http.Handler{BeanHandler(), DirectHandler()} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/null/bean", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
			t.Fatalf("unexpected Allow header %q", allow)
		}
	}
}
