package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ComputeFunc produces a header value at call time.
type ComputeFunc func(ctx context.Context, name string) (string, error)

// HeaderParam declares one outgoing header. Exactly one of Value or Compute is
// normally set; Value may contain ${key} property expressions. Optional headers
// are skipped when their value cannot be resolved instead of failing the call.
type HeaderParam struct {
	Name     string
	Value    string
	Compute  ComputeFunc
	Optional bool
}

// Constant declares a header with a fixed value or property expression.
func Constant(name, value string) HeaderParam {
	return HeaderParam{Name: name, Value: value}
}

// Computed declares a header whose value is produced by fn for every call.
func Computed(name string, fn ComputeFunc) HeaderParam {
	return HeaderParam{Name: name, Compute: fn}
}

// HeadersFactory adjusts outgoing headers after declarative headers have been
// applied. incoming holds headers propagated through WithIncomingHeaders and
// may be nil.
type HeadersFactory interface {
	Update(ctx context.Context, incoming, outgoing http.Header) (http.Header, error)
}

type HeadersFactoryFunc func(ctx context.Context, incoming, outgoing http.Header) (http.Header, error)

func (f HeadersFactoryFunc) Update(ctx context.Context, incoming, outgoing http.Header) (http.Header, error) {
	return f(ctx, incoming, outgoing)
}

type incomingKey struct{}

// WithIncomingHeaders attaches the inbound request headers so a HeadersFactory
// can propagate them.
func WithIncomingHeaders(ctx context.Context, h http.Header) context.Context {
	return context.WithValue(ctx, incomingKey{}, h.Clone())
}

func incomingHeaders(ctx context.Context) http.Header {
	h, _ := ctx.Value(incomingKey{}).(http.Header)
	return h
}

// ErrUnresolvedProperty reports a ${key} expression with no value.
var ErrUnresolvedProperty = errors.New("client: unresolved property")

func (h HeaderParam) resolve(ctx context.Context, props PropertySource) (string, error) {
	if h.Compute != nil {
		return h.Compute(ctx, h.Name)
	}
	return Expand(h.Value, props)
}

// Expand substitutes every ${key} in expr with its value from props. A
// missing property fails with ErrUnresolvedProperty; "$" not followed by "{"
// is kept literally.
func Expand(expr string, props PropertySource) (string, error) {
	if !strings.Contains(expr, "${") {
		return expr, nil
	}
	var sb strings.Builder
	rest := expr
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("client: unterminated expression in %q", expr)
		}
		key := strings.TrimSpace(rest[start+2 : start+end])
		if key == "" {
			return "", fmt.Errorf("client: empty expression in %q", expr)
		}
		var (
			value string
			ok    bool
		)
		if props != nil {
			value, ok = props.Lookup(key)
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnresolvedProperty, key)
		}
		sb.WriteString(rest[:start])
		sb.WriteString(value)
		rest = rest[start+end+1:]
	}
}
