package binding

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NullText is how an absent value renders.
const NullText = "null"

// Value is the bound result for one parameter. A Value that is not Present
// represents an absent field and renders as NullText.
type Value struct {
	Name    string
	Kind    Kind
	Present bool
	Multi   bool

	scalar any
	list   []any
}

// IsNull reports whether the field was absent.
func (v Value) IsNull() bool {
	return !v.Present
}

// Interface returns the coerced value: nil when absent, []any for multi-valued
// parameters, otherwise one of string, int32, int64, float64, bool, uuid.UUID.
func (v Value) Interface() any {
	if !v.Present {
		return nil
	}
	if v.Multi {
		return append([]any(nil), v.list...)
	}
	return v.scalar
}

func (v Value) String() string {
	if !v.Present {
		return NullText
	}
	if v.Multi {
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v.scalar)
}

// StringPtr returns the bound string, or nil when absent or of another kind.
func (v Value) StringPtr() *string {
	s, ok := v.scalar.(string)
	if !v.Present || !ok {
		return nil
	}
	return &s
}

// IntegerPtr returns the bound 32-bit integer, or nil.
func (v Value) IntegerPtr() *int32 {
	n, ok := v.scalar.(int32)
	if !v.Present || !ok {
		return nil
	}
	return &n
}

// LongPtr returns the bound 64-bit integer, or nil.
func (v Value) LongPtr() *int64 {
	n, ok := v.scalar.(int64)
	if !v.Present || !ok {
		return nil
	}
	return &n
}

// NumberPtr returns the bound float, or nil.
func (v Value) NumberPtr() *float64 {
	n, ok := v.scalar.(float64)
	if !v.Present || !ok {
		return nil
	}
	return &n
}

// BoolPtr returns the bound boolean, or nil.
func (v Value) BoolPtr() *bool {
	b, ok := v.scalar.(bool)
	if !v.Present || !ok {
		return nil
	}
	return &b
}

// UUIDPtr returns the bound UUID, or nil.
func (v Value) UUIDPtr() *uuid.UUID {
	id, ok := v.scalar.(uuid.UUID)
	if !v.Present || !ok {
		return nil
	}
	return &id
}

// Strings returns every bound element rendered as text. Absent values return
// nil.
func (v Value) Strings() []string {
	if !v.Present {
		return nil
	}
	if !v.Multi {
		return []string{fmt.Sprint(v.scalar)}
	}
	out := make([]string, len(v.list))
	for i, item := range v.list {
		out[i] = fmt.Sprint(item)
	}
	return out
}

// Values is the ordered result of a successful Bind.
type Values struct {
	values []Value
	index  map[string]int
}

func newValues(size int) Values {
	return Values{
		values: make([]Value, 0, size),
		index:  make(map[string]int, size),
	}
}

func (vs *Values) append(v Value) {
	vs.index[v.Name] = len(vs.values)
	vs.values = append(vs.values, v)
}

// Get returns the value bound for name. Undeclared names return a null Value.
func (vs Values) Get(name string) Value {
	i, ok := vs.index[name]
	if !ok {
		return Value{Name: name}
	}
	return vs.values[i]
}

// Args returns the values in declaration order, suitable for positional
// handler arguments.
func (vs Values) Args() []Value {
	return append([]Value(nil), vs.values...)
}

// Len returns the number of bound parameters.
func (vs Values) Len() int {
	return len(vs.values)
}

// Format renders the values in declaration order joined by sep.
func (vs Values) Format(sep string) string {
	parts := make([]string, len(vs.values))
	for i, v := range vs.values {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}
