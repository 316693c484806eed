package schema

// Message is a parsed schema. Fields are in declaration order.
type Message struct {
	Name   string
	Fields []Field
}

// Storage returns the storage fields in declaration order.
func (m *Message) Storage() []Field {
	return m.filter(Storage)
}

// Constants returns the constant fields in declaration order.
func (m *Message) Constants() []Field {
	return m.filter(Constant)
}

// HasConstants reports whether any constant field is declared.
func (m *Message) HasConstants() bool {
	for _, f := range m.Fields {
		if f.Kind == Constant {
			return true
		}
	}
	return false
}

// Field returns the first field named name.
func (m *Message) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Duplicates returns field names declared more than once, in order of
// their second appearance.
func (m *Message) Duplicates() []string {
	seen := make(map[string]int, len(m.Fields))
	var dups []string
	for _, f := range m.Fields {
		seen[f.Name]++
		if seen[f.Name] == 2 {
			dups = append(dups, f.Name)
		}
	}
	return dups
}

func (m *Message) filter(kind FieldKind) []Field {
	out := make([]Field, 0, len(m.Fields))
	for _, f := range m.Fields {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
