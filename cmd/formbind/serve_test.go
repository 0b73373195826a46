package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/components/operations"
	"github.com/goliatone/go-formbind/pkg/security"
)

func TestServe_RoutesAndGracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := loadFixture(t)
	handler, routes, err := buildHandler(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, routes, "/null/direct")
	assert.Contains(t, routes, "/describe-request")
	assert.Contains(t, routes, "/api-permission-webapp")
	assert.Contains(t, routes, "POST /notes")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, ln, handler, cfg.Server.ShutdownTimeout, zap.NewNop())
	}()

	transport := &http.Transport{}
	defer transport.CloseIdleConnections()
	httpClient := &http.Client{Transport: transport, Timeout: 5 * time.Second}
	base := "http://" + ln.Addr().String()

	do := func(method, path, token, body string) (int, string, http.Header) {
		t.Helper()
		req, err := http.NewRequest(method, base+path, strings.NewReader(body))
		require.NoError(t, err)
		if body != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		res, err := httpClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return res.StatusCode, string(data), res.Header
	}

	status, body, header := do(http.MethodPost, "/null/direct", "", "formString=")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, ",null", body)
	assert.NotEmpty(t, header.Get("X-Request-ID"))

	status, _, _ = do(http.MethodPost, "/null/bean", "", "formString=&formInteger=")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = do(http.MethodGet, "/describe-request", "", "")
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = do(http.MethodGet, "/api-permission-webapp", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = do(http.MethodGet, "/api-permission-webapp", "bob-token", "")
	assert.Equal(t, http.StatusForbidden, status)

	status, body, _ = do(http.MethodGet, "/api-permission-webapp", "alice-token", "")
	require.Equal(t, http.StatusOK, status)
	var resources []security.ResourcePermission
	require.NoError(t, json.Unmarshal([]byte(body), &resources))
	assert.Equal(t, []security.ResourcePermission{{ResourceName: "tenant-a", Scopes: []string{"read"}}}, resources)

	status, body, _ = do(http.MethodPost, "/notes", "", "title=<b>hi</b>")
	require.Equal(t, http.StatusOK, status)
	var result operations.Result
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.Equal(t, "createNote", result.Operation)
	assert.Equal(t, "hi", result.Values["title"])
	assert.Nil(t, result.Values["priority"])

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
	transport.CloseIdleConnections()
}

func TestBuildHandler_BadManifest(t *testing.T) {
	cfg := loadFixture(t)
	cfg.Manifest.Path = "/does/not/exist.yaml"
	_, _, err := buildHandler(context.Background(), cfg, nil)
	require.Error(t, err)
}
