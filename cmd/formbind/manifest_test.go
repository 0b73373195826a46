package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/manifest"
)

func TestManifestCmd_Table(t *testing.T) {
	cfgPath := writeFixture(t)

	out, _, err := execute(t, "--config", cfgPath, "manifest")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"OPERATION", "METHOD", "PATH", "PARAM", "KIND", "SOURCE", "FLAGS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"createNote", "POST", "/notes", "title", "string", "form", "sanitize=strict"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"createNote", "POST", "/notes", "priority", "integer", "form", "-"}, strings.Fields(lines[2]))
}

func TestManifestCmd_YAML(t *testing.T) {
	cfgPath := writeFixture(t)

	out, _, err := execute(t, "--config", cfgPath, "manifest", "-o", "yaml")
	require.NoError(t, err)

	var m manifest.Manifest
	require.NoError(t, yaml.Unmarshal([]byte(out), &m))
	op, ok := m.Operation("createNote")
	require.True(t, ok)
	assert.Len(t, op.Params, 2)
}

func TestManifestCmd_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	_, _, err := execute(t, "--config", missing, "manifest")
	require.ErrorContains(t, err, "manifest.path is unset")

	_, _, err = execute(t, "--config", writeFixture(t), "manifest", "-o", "xml")
	require.ErrorContains(t, err, "unknown output format")
}

func TestLintCmd(t *testing.T) {
	cfgPath := writeFixture(t)
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("operations:\n  a:\n    params:\n      - {name: x, kind: decimal}\n"), 0o644))

	out, _, err := execute(t, "--config", cfgPath, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "1 operations ok")

	_, stderr, err := execute(t, "--config", cfgPath, "lint", bad)
	require.ErrorContains(t, err, "1 of 1 locations failed")
	assert.Contains(t, stderr, bad)
	assert.Contains(t, stderr, "decimal")
}
