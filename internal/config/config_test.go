package config

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/pkg/security"
)

const fileConfig = `
server:
  addr: ":9090"
  base_path: api/
  problem_details: true
manifest:
  path: ./manifests
client:
  base_url: http://localhost:9090/api
  retry_attempts: 5
  retry_delay: 250ms
headers:
  value: from-file
security:
  tokens:
    - token: alice-token
      principal: alice
      permissions:
        - name: api-permission-webapp
      resources:
        - rsname: tenant-a
          scopes: [read, write]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, uint(3), cfg.Client.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.ProblemDetails)
	assert.Empty(t, cfg.Security.Tokens)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("FORMBIND_SERVER_ADDR", ":7070")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	t.Setenv("FORMBIND_CLIENT_RETRY_ATTEMPTS", "2")
	t.Setenv("FORMBIND_HEADERS_VALUE", "from-env")

	cfg, err := Load(writeConfig(t, fileConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.True(t, cfg.Server.ProblemDetails)
	assert.Equal(t, "./manifests", cfg.Manifest.Path)
	assert.Equal(t, uint(2), cfg.Client.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.RetryDelay)

	value, ok := cfg.Properties().Lookup("headers.value")
	require.True(t, ok)
	assert.Equal(t, "from-env", value)

	_, ok = cfg.Properties().Lookup("headers.missing")
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "client:\n  retry_attempts: 0\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "security:\n  tokens:\n    - token: a\n    - token: a\n"))
	require.ErrorContains(t, err, "repeats a token")

	_, err = Load(writeConfig(t, "server: [\n"))
	require.Error(t, err)
}

func TestConfig_Resolver(t *testing.T) {
	cfg, err := Load(writeConfig(t, fileConfig))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer alice-token")

	id, err := cfg.Resolver().Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Principal())

	granted, err := id.CheckPermission(context.Background(), security.NewPermission("api-permission-webapp"))
	require.NoError(t, err)
	assert.True(t, granted)

	resources, ok := id.Attribute(security.AttributePermissions)
	require.True(t, ok)
	assert.Equal(t, []security.ResourcePermission{{ResourceName: "tenant-a", Scopes: []string{"read", "write"}}}, resources)
}
