package binding

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/multierr"
)

// ErrBinding matches every parameter-level binding failure via errors.Is.
var ErrBinding = errors.New("binding: invalid parameter")

// EmptyValueError reports a field that was present without any value. It
// applies to every kind, including strings.
type EmptyValueError struct {
	Param string
}

func (e *EmptyValueError) Error() string {
	return fmt.Sprintf("binding: parameter %q is present without a value", e.Param)
}

func (e *EmptyValueError) Is(target error) bool { return target == ErrBinding }

// CoercionError reports a raw value that cannot be parsed into the declared
// kind. The empty string fails for every kind except strings.
type CoercionError struct {
	Param string
	Kind  Kind
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("binding: parameter %q: cannot coerce %q to %s: %v", e.Param, e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("binding: parameter %q: cannot coerce %q to %s", e.Param, e.Value, e.Kind)
}

func (e *CoercionError) Unwrap() error { return e.Err }

func (e *CoercionError) Is(target error) bool { return target == ErrBinding }

// MultipleValuesError reports more than one value for a single-valued
// parameter.
type MultipleValuesError struct {
	Param string
	Count int
}

func (e *MultipleValuesError) Error() string {
	return fmt.Sprintf("binding: parameter %q expects one value, got %d", e.Param, e.Count)
}

func (e *MultipleValuesError) Is(target error) bool { return target == ErrBinding }

// MissingError reports an absent field for a parameter declared Required.
type MissingError struct {
	Param string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("binding: required parameter %q is missing", e.Param)
}

func (e *MissingError) Is(target error) bool { return target == ErrBinding }

// ParamError pairs a parameter name with its failure.
type ParamError struct {
	Param  string
	Source Source
	Err    error
}

// BindError aggregates every parameter failure from a single Bind call, in
// declaration order.
type BindError struct {
	failures []ParamError
	err      error
}

func newBindError(failures []ParamError) *BindError {
	var combined error
	for _, f := range failures {
		combined = multierr.Append(combined, f.Err)
	}
	return &BindError{failures: failures, err: combined}
}

func (e *BindError) Error() string {
	if e == nil || e.err == nil {
		return "binding: request rejected"
	}
	msgs := make([]string, 0, len(e.failures))
	for _, err := range multierr.Errors(e.err) {
		msgs = append(msgs, strings.TrimPrefix(err.Error(), "binding: "))
	}
	return "binding: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *BindError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return multierr.Errors(e.err)
}

// Failures returns a copy of the per-parameter failures.
func (e *BindError) Failures() []ParamError {
	if e == nil {
		return nil
	}
	return append([]ParamError(nil), e.failures...)
}

// Params returns the names of the failing parameters.
func (e *BindError) Params() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.failures))
	for i, f := range e.failures {
		out[i] = f.Param
	}
	return out
}

// StatusCode maps binding failures onto a client error.
func (e *BindError) StatusCode() int { return http.StatusBadRequest }
