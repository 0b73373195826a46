// Package formdata decodes request bodies, query strings, and headers into
// binding.FieldSet values without collapsing "key" and "key=" into the same
// thing, which net/url.ParseQuery does.
package formdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formbind/pkg/binding"
)

const (
	MediaTypeURLEncoded = "application/x-www-form-urlencoded"
	MediaTypeMultipart  = "multipart/form-data"

	// DefaultMaxBytes caps request bodies when callers pass a non-positive limit.
	DefaultMaxBytes int64 = 1 << 20
)

var (
	ErrUnsupportedMediaType = errors.New("formdata: unsupported media type")
	ErrBodyTooLarge         = errors.New("formdata: request body too large")
	ErrMalformed            = errors.New("formdata: malformed form data")
)

// ParseURLEncoded decodes an application/x-www-form-urlencoded payload. A key
// without "=" is recorded as present with no value; "key=" records the empty
// string.
func ParseURLEncoded(raw string) (binding.FieldSet, error) {
	var set binding.FieldSet
	for raw != "" {
		var segment string
		segment, raw, _ = strings.Cut(raw, "&")
		if segment == "" {
			continue
		}

		rawKey, rawValue, hasValue := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return binding.FieldSet{}, fmt.Errorf("%w: key %q: %v", ErrMalformed, rawKey, err)
		}
		if key == "" {
			continue
		}
		if !hasValue {
			set.Mark(key)
			continue
		}

		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return binding.FieldSet{}, fmt.Errorf("%w: value for %q: %v", ErrMalformed, key, err)
		}
		set.Add(key, value)
	}
	return set, nil
}

// EncodeURLEncoded is the inverse of ParseURLEncoded: fields without values
// are written as a bare key so the receiver sees them as present.
func EncodeURLEncoded(set binding.FieldSet) string {
	var sb strings.Builder
	for _, f := range set.Fields() {
		key := url.QueryEscape(f.Name)
		if len(f.Values) == 0 {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(key)
			continue
		}
		for _, value := range f.Values {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(key)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(value))
		}
	}
	return sb.String()
}

// Query decodes the URL query string with the same presence rules as
// ParseURLEncoded.
func Query(u *url.URL) (binding.FieldSet, error) {
	if u == nil {
		return binding.FieldSet{}, nil
	}
	return ParseURLEncoded(u.RawQuery)
}

// Headers converts request headers into a FieldSet keyed by canonical header
// name, in sorted order.
func Headers(h http.Header) binding.FieldSet {
	var set binding.FieldSet
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		canonical := http.CanonicalHeaderKey(name)
		set.Mark(canonical)
		for _, value := range h[name] {
			set.Add(canonical, value)
		}
	}
	return set
}

// ReadForm reads and decodes the request body. An absent or empty body yields
// an empty set regardless of the declared content type.
func ReadForm(r *http.Request, maxBytes int64) (binding.FieldSet, error) {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return binding.FieldSet{}, nil
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return binding.FieldSet{}, fmt.Errorf("formdata: read body: %w", err)
	}
	if int64(len(body)) > maxBytes {
		return binding.FieldSet{}, ErrBodyTooLarge
	}
	if len(body) == 0 {
		return binding.FieldSet{}, nil
	}

	contentType := strings.TrimSpace(r.Header.Get("Content-Type"))
	if contentType == "" {
		return binding.FieldSet{}, fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return binding.FieldSet{}, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case MediaTypeURLEncoded:
		return ParseURLEncoded(string(body))
	case MediaTypeMultipart:
		return parseMultipart(body, params["boundary"])
	default:
		return binding.FieldSet{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// parseMultipart treats every text part as one value for its form name. File
// parts contribute their filename so presence is still observable.
func parseMultipart(body []byte, boundary string) (binding.FieldSet, error) {
	if boundary == "" {
		return binding.FieldSet{}, fmt.Errorf("%w: multipart boundary is missing", ErrMalformed)
	}

	var set binding.FieldSet
	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return binding.FieldSet{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}
		if filename := part.FileName(); filename != "" {
			_, _ = io.Copy(io.Discard, part)
			_ = part.Close()
			set.Add(name, filename)
			continue
		}

		content, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return binding.FieldSet{}, fmt.Errorf("%w: part %q: %v", ErrMalformed, name, err)
		}
		set.Add(name, string(content))
	}
}
