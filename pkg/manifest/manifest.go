package manifest

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/goliatone/go-formbind/pkg/binding"
)

// Operation is one bindable endpoint.
type Operation struct {
	ID      string         `json:"id" yaml:"id"`
	Method  string         `json:"method" yaml:"method"`
	Path    string         `json:"path" yaml:"path"`
	Summary string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Params  binding.Params `json:"params" yaml:"params"`
}

// Manifest indexes operations by id.
type Manifest struct {
	Operations map[string]Operation `json:"operations" yaml:"operations"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Operations: make(map[string]Operation)}
}

// Add validates op and registers it. Operation ids must be unique.
func (m *Manifest) Add(op Operation) error {
	normalised, err := normaliseOperation(op)
	if err != nil {
		return err
	}
	if m.Operations == nil {
		m.Operations = make(map[string]Operation)
	}
	if _, exists := m.Operations[normalised.ID]; exists {
		return fmt.Errorf("manifest: duplicate operation %q", normalised.ID)
	}
	m.Operations[normalised.ID] = normalised
	return nil
}

// Operation returns the operation registered under id.
func (m *Manifest) Operation(id string) (Operation, bool) {
	if m == nil {
		return Operation{}, false
	}
	op, ok := m.Operations[id]
	return op, ok
}

// IDs returns the operation ids in sorted order.
func (m *Manifest) IDs() []string {
	if m == nil {
		return nil
	}
	ids := make([]string, 0, len(m.Operations))
	for id := range m.Operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports how many operations the manifest holds.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Operations)
}

// Merge adds every operation of other, failing on the first duplicate id.
func (m *Manifest) Merge(other *Manifest) error {
	for _, id := range other.IDs() {
		if err := m.Add(other.Operations[id]); err != nil {
			return err
		}
	}
	return nil
}

func normaliseOperation(op Operation) (Operation, error) {
	op.ID = strings.TrimSpace(op.ID)
	if op.ID == "" {
		return Operation{}, fmt.Errorf("manifest: operation id is required")
	}

	op.Method = strings.ToUpper(strings.TrimSpace(op.Method))
	if op.Method == "" {
		op.Method = http.MethodPost
	}
	if !validMethod(op.Method) {
		return Operation{}, fmt.Errorf("manifest: operation %q has unsupported method %q", op.ID, op.Method)
	}

	op.Path = strings.TrimSpace(op.Path)
	if op.Path == "" {
		op.Path = "/" + op.ID
	}
	if !strings.HasPrefix(op.Path, "/") {
		op.Path = "/" + op.Path
	}

	params, err := binding.NewParams(op.Params...)
	if err != nil {
		return Operation{}, fmt.Errorf("manifest: operation %q: %w", op.ID, err)
	}
	op.Params = params
	return op, nil
}

func validMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
