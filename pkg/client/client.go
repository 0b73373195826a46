package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Method declares one remote operation. CallHeaders name the headers whose
// values are supplied positionally to Call. RawQuery is sent verbatim so bare
// keys survive.
type Method struct {
	Name        string
	HTTPMethod  string
	Path        string
	RawQuery    string
	ContentType string
	Headers     []HeaderParam
	CallHeaders []string
}

// RequestData describes a received request. The describe-request endpoint
// returns it as JSON.
type RequestData struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Headers map[string][]string `json:"headers"`
}

// Header returns the first value of the named header.
func (d RequestData) Header(name string) string {
	values := d.Headers[http.CanonicalHeaderKey(name)]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "client: unexpected status " + e.Status
}

func (e *StatusError) StatusCode() int { return e.Code }

func (e *StatusError) transient() bool {
	switch e.Code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

type Client struct {
	base *url.URL
	http *http.Client
	opts Options
}

// New builds a client for baseURL.
func New(baseURL string, fns ...OptionFn) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must be http or https", baseURL)
	}

	opts := NewOptions(fns...)
	httpClient := http.DefaultClient
	if opts.HTTPClient != nil {
		httpClient = opts.HTTPClient
	}
	if opts.TokenSource != nil {
		clone := *httpClient
		transport := clone.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		clone.Transport = &oauth2.Transport{Source: opts.TokenSource, Base: transport}
		httpClient = &clone
	}

	return &Client{base: base, http: httpClient, opts: opts}, nil
}

// NewRequest builds the outgoing request for m with every header resolved.
func (c *Client) NewRequest(ctx context.Context, m Method, args ...string) (*http.Request, error) {
	return c.newRequest(ctx, m, nil, args)
}

func (c *Client) newRequest(ctx context.Context, m Method, body []byte, args []string) (*http.Request, error) {
	if len(args) != len(m.CallHeaders) {
		return nil, fmt.Errorf("client: %s expects %d header arguments, got %d", m.Name, len(m.CallHeaders), len(args))
	}

	method := m.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}
	target := c.base.JoinPath(strings.TrimPrefix(m.Path, "/"))
	target.RawQuery = m.RawQuery

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", m.Name, err)
	}

	headers, err := c.headers(ctx, m, args)
	if err != nil {
		return nil, err
	}
	if m.ContentType != "" && body != nil {
		headers.Set("Content-Type", m.ContentType)
	}
	req.Header = headers
	return req, nil
}

func (c *Client) headers(ctx context.Context, m Method, args []string) (http.Header, error) {
	out := make(http.Header)
	for _, group := range [][]HeaderParam{c.opts.Headers, m.Headers} {
		for _, h := range group {
			value, err := h.resolve(ctx, c.opts.Properties)
			if err != nil {
				if h.Optional {
					c.opts.Logger.Debug("skipping optional header", zap.String("header", h.Name), zap.Error(err))
					continue
				}
				return nil, fmt.Errorf("client: %s: header %q: %w", m.Name, h.Name, err)
			}
			out.Set(h.Name, value)
		}
	}
	for i, name := range m.CallHeaders {
		out.Set(name, args[i])
	}

	if c.opts.Factory != nil {
		updated, err := c.opts.Factory.Update(ctx, incomingHeaders(ctx), out.Clone())
		if err != nil {
			return nil, fmt.Errorf("client: %s: headers factory: %w", m.Name, err)
		}
		for name, values := range updated {
			out.Del(name)
			for _, value := range values {
				out.Add(name, value)
			}
		}
	}
	return out, nil
}

// Call performs m, retrying network errors and 502/503/504 responses. The
// caller owns the returned body.
func (c *Client) Call(ctx context.Context, m Method, args ...string) (*http.Response, error) {
	return c.Send(ctx, m, nil, args...)
}

// Send performs m with body, which is replayed on every attempt.
func (c *Client) Send(ctx context.Context, m Method, body []byte, args ...string) (*http.Response, error) {
	return retry.DoWithData(func() (*http.Response, error) {
		req, err := c.newRequest(ctx, m, body, args)
		if err != nil {
			return nil, retry.Unrecoverable(err)
		}
		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, res.Body)
			_ = res.Body.Close()
			statusErr := &StatusError{Code: res.StatusCode, Status: res.Status}
			if !statusErr.transient() {
				return nil, retry.Unrecoverable(statusErr)
			}
			return nil, statusErr
		}
		return res, nil
	},
		retry.Context(ctx),
		retry.Attempts(c.opts.RetryAttempts),
		retry.Delay(c.opts.RetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			c.opts.Logger.Warn("retrying call",
				zap.String("method", m.Name),
				zap.Uint("attempt", attempt+1),
				zap.Error(err),
			)
		}),
	)
}

// CallJSON performs m and decodes the JSON response into out.
func (c *Client) CallJSON(ctx context.Context, m Method, out any, args ...string) error {
	res, err := c.Call(ctx, m, args...)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("client: %s: decode response: %w", m.Name, err)
	}
	return nil
}
