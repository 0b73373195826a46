package binding

// Field is one named entry decoded from a request. Present distinguishes a
// field that was seen without any value (Present with empty Values) from a
// field that never appeared.
type Field struct {
	Name    string
	Values  []string
	Present bool
}

// FieldSet holds decoded fields in first-seen order. The zero value is an
// empty set ready for use.
type FieldSet struct {
	index  map[string]int
	fields []Field
}

// NewFieldSet builds a set from name/values pairs. A nil or empty slice marks
// the name as present with no value.
func NewFieldSet(entries map[string][]string) FieldSet {
	var set FieldSet
	for name, values := range entries {
		set.Mark(name)
		for _, value := range values {
			set.Add(name, value)
		}
	}
	return set
}

// Mark records name as present without appending a value.
func (s *FieldSet) Mark(name string) {
	s.field(name)
}

// Add appends value to name, marking it present.
func (s *FieldSet) Add(name, value string) {
	f := s.field(name)
	f.Values = append(f.Values, value)
}

func (s *FieldSet) field(name string) *Field {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		return &s.fields[i]
	}
	s.index[name] = len(s.fields)
	s.fields = append(s.fields, Field{Name: name, Present: true})
	return &s.fields[len(s.fields)-1]
}

// Lookup returns the field for name. Absent names yield a Field with Present
// set to false.
func (s FieldSet) Lookup(name string) Field {
	i, ok := s.index[name]
	if !ok {
		return Field{Name: name}
	}
	f := s.fields[i]
	f.Values = append([]string(nil), f.Values...)
	return f
}

// Has reports whether name was seen.
func (s FieldSet) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of distinct names.
func (s FieldSet) Len() int {
	return len(s.fields)
}

// Fields returns a copy of the fields in first-seen order.
func (s FieldSet) Fields() []Field {
	if len(s.fields) == 0 {
		return nil
	}
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		f.Values = append([]string(nil), f.Values...)
		out[i] = f
	}
	return out
}

// Sources maps each request source to its decoded fields. Missing sources
// behave as empty sets.
type Sources map[Source]FieldSet
