package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbind/pkg/binding"
)

type documentFile struct {
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Method  string          `json:"method" yaml:"method"`
	Path    string          `json:"path" yaml:"path"`
	Summary string          `json:"summary" yaml:"summary"`
	Params  []binding.Param `json:"params" yaml:"params"`
}

// Parse reads a single JSON or YAML manifest document.
func Parse(data []byte) (*Manifest, error) {
	return parse(data, "<inline>")
}

// LoadFS walks fsys and merges every .json, .yaml, and .yml manifest it
// finds. A nil filesystem yields an empty manifest.
func LoadFS(fsys fs.FS) (*Manifest, error) {
	out := New()
	if fsys == nil {
		return out, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isManifestFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}
		m, err := parse(data, path)
		if err != nil {
			return err
		}
		if err := out.Merge(m); err != nil {
			return fmt.Errorf("%w (file %s)", err, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parse(data []byte, source string) (*Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("manifest: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("manifest: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	ids := make([]string, 0, len(doc.Operations))
	for id := range doc.Operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := New()
	for _, id := range ids {
		raw := doc.Operations[id]
		op := Operation{
			ID:      id,
			Method:  raw.Method,
			Path:    raw.Path,
			Summary: raw.Summary,
			Params:  raw.Params,
		}
		if err := out.Add(op); err != nil {
			return nil, fmt.Errorf("%w (file %s)", err, source)
		}
	}
	return out, nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
