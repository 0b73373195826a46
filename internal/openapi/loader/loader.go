package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	pkgopenapi "github.com/goliatone/go-formbind/pkg/openapi"
)

const acceptDocuments = "application/yaml, application/json;q=0.9, */*;q=0.5"

// Loader resolves file, fs.FS, and URL sources into documents.
type Loader struct {
	files    fs.FS
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
	logger   *zap.Logger
}

var _ pkgopenapi.Loader = (*Loader)(nil)

type openFunc func(ctx context.Context, location string) (io.ReadCloser, error)

func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{
		files:    options.FileSystem,
		timeout:  options.RequestTimeout,
		maxBytes: options.MaxBytes,
		logger:   options.Logger,
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads src, enforcing the configured size cap for every source kind.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	open, err := l.opener(src.Kind())
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	location := src.Location()
	if strings.TrimSpace(location) == "" {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s location is required", src.Kind())
	}

	rc, err := open(ctx, location)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s %q: %w", src.Kind(), location, err)
	}
	defer rc.Close()

	data, err := l.read(rc)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s %q: %w", src.Kind(), location, err)
	}
	l.logger.Debug("openapi document loaded",
		zap.String("kind", string(src.Kind())),
		zap.String("location", location),
		zap.Int("bytes", len(data)),
	)
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) opener(kind pkgopenapi.SourceKind) (openFunc, error) {
	switch kind {
	case pkgopenapi.SourceKindFile:
		return openFile, nil
	case pkgopenapi.SourceKindFS:
		if l.files == nil {
			return nil, errors.New("openapi loader: filesystem is not configured")
		}
		return l.openFS, nil
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return nil, errors.New("openapi loader: http support disabled")
		}
		return l.openURL, nil
	default:
		return nil, fmt.Errorf("openapi loader: unsupported source kind %q", kind)
	}
}

func (l *Loader) read(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", pkgopenapi.ErrDocumentTooLarge, l.maxBytes)
	}
	return data, nil
}

func openFile(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (l *Loader) openFS(_ context.Context, name string) (io.ReadCloser, error) {
	return l.files.Open(strings.TrimPrefix(name, "/"))
}

func (l *Loader) openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptDocuments)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
