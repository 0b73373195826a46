package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/internal/config"
)

const notesManifest = `
operations:
  createNote:
    path: /notes
    params:
      - {name: title, kind: string, sanitize: strict}
      - {name: priority, kind: integer}
`

// writeFixture creates a config file and a manifest under a temp dir and
// returns the config path.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "notes.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(notesManifest), 0o644))

	cfg := `
server:
  shutdown_timeout: 2s
manifest:
  path: ` + manifestPath + `
security:
  tokens:
    - token: alice-token
      principal: alice
      permissions:
        - name: api-permission-webapp
      resources:
        - rsname: tenant-a
          scopes: [read]
    - token: bob-token
      principal: bob
`
	cfgPath := filepath.Join(dir, "formbind.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func loadFixture(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(writeFixture(t))
	require.NoError(t, err)
	return cfg
}

// execute runs the root command and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
