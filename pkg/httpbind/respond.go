package httpbind

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/formdata"
	"github.com/goliatone/go-formbind/pkg/binding"
)

// HTTPError is implemented by errors that carry their own status code.
type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// StatusFor maps an error onto the response status: binding and malformed
// input failures are client errors, unknown errors are server errors.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, formdata.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, formdata.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, formdata.ErrMalformed), errors.Is(err, binding.ErrBinding):
		return http.StatusBadRequest
	}
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// Problem is the JSON failure body written when problem details are enabled.
type Problem struct {
	Status int                 `json:"status"`
	Title  string              `json:"title"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// NewProblem builds the failure document for err.
func NewProblem(err error) Problem {
	status := StatusFor(err)
	problem := Problem{Status: status, Title: http.StatusText(status)}

	var bindErr *binding.BindError
	if errors.As(err, &bindErr) {
		problem.Fields = make(map[string][]string, len(bindErr.Failures()))
		for _, failure := range bindErr.Failures() {
			problem.Fields[failure.Param] = append(problem.Fields[failure.Param], failure.Err.Error())
		}
	}
	return problem
}

// WriteError writes the failure response for err.
func WriteError(w http.ResponseWriter, r *http.Request, err error, opts Options) {
	status := StatusFor(err)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := []zap.Field{zap.Int("status", status), zap.Error(err)}
	if r != nil {
		fields = append(fields, zap.String("method", r.Method), zap.String("path", r.URL.Path))
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Debug("request rejected", fields...)
	}

	if !opts.ProblemDetails {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(NewProblem(err))
}

// WriteText writes a plain text response.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
