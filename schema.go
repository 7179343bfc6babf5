package germanic

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// FieldType enumerates the closed set of types a schema field may declare.
// Each maps directly onto a FlatBuffer scalar or offset slot.
type FieldType string

const (
	TypeString      FieldType = "string"   // UTF-8 string offset
	TypeBool        FieldType = "bool"     // 1-byte bool
	TypeInt         FieldType = "int"      // int32
	TypeFloat       FieldType = "float"    // float32
	TypeStringArray FieldType = "[string]" // vector of string offsets
	TypeIntArray    FieldType = "[int]"    // vector of int32
	TypeTable       FieldType = "table"    // nested table offset
)

func (t FieldType) valid() bool {
	switch t {
	case TypeString, TypeBool, TypeInt, TypeFloat, TypeStringArray, TypeIntArray, TypeTable:
		return true
	}
	return false
}

// FieldDefinition describes a single field within a schema.
type FieldDefinition struct {
	// Type of the field.
	Type FieldType `json:"type"`

	// Required marks the field as mandatory and non-empty.
	Required bool `json:"required,omitempty"`

	// Default value as a string regardless of the target type (e.g. "DE",
	// "true", "42"); parsed lazily at build time. nil means no default.
	Default *string `json:"default,omitempty"`

	// Fields holds the nested field definitions. Non-nil if and only if
	// Type == TypeTable.
	Fields *FieldMap `json:"fields,omitempty"`
}

// SchemaDefinition is the canonical in-memory schema, independent of which
// textual dialect produced it. It is constructed once, immutable thereafter,
// and may be shared read-only across concurrent compilations.
type SchemaDefinition struct {
	// SchemaID uniquely identifies the schema.
	// Format: "namespace.domain.name.vN", e.g. "de.dining.restaurant.v1".
	SchemaID string `json:"schema_id"`

	// Version of the schema (1-255).
	Version uint8 `json:"version"`

	// Fields in declaration order. ORDER MATTERS: field position determines
	// the FlatBuffer vtable slot (voffset = 4 + 2*index).
	Fields FieldMap `json:"fields"`
}

// FieldCount returns the number of top-level fields.
func (s *SchemaDefinition) FieldCount() int { return s.Fields.Len() }

// MarshalIndentJSON renders the schema as indented native-dialect JSON,
// fields in declaration order.
func (s *SchemaDefinition) MarshalIndentJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// FieldMap is an insertion-ordered mapping of field name to definition.
// It exists because a plain Go map would lose declaration order, and field
// order is part of the binary ABI.
type FieldMap struct {
	keys []string
	defs map[string]*FieldDefinition
}

// Len returns the number of fields.
func (m *FieldMap) Len() int { return len(m.keys) }

// Get looks up a field by name.
func (m *FieldMap) Get(name string) (*FieldDefinition, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// At returns the field at position i in declaration order.
func (m *FieldMap) At(i int) (string, *FieldDefinition) {
	name := m.keys[i]
	return name, m.defs[name]
}

// Keys returns the field names in declaration order. The returned slice is
// shared; callers must not mutate it.
func (m *FieldMap) Keys() []string { return m.keys }

// Set appends a field, or replaces its definition in place when the name is
// already present (keeping its original position).
func (m *FieldMap) Set(name string, def *FieldDefinition) {
	if m.defs == nil {
		m.defs = make(map[string]*FieldDefinition)
	}
	if _, ok := m.defs[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.defs[name] = def
}

// UnmarshalJSON decodes a JSON object into the map, preserving key order by
// walking the decoder token stream instead of letting a Go map shuffle it.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("germanic: fields must be a JSON object")
	}
	*m = FieldMap{defs: make(map[string]*FieldDefinition)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("germanic: invalid field name token %v", keyTok)
		}
		var def FieldDefinition
		if err := dec.Decode(&def); err != nil {
			return fmt.Errorf("germanic: field %q: %w", name, err)
		}
		if !def.Type.valid() {
			return fmt.Errorf("germanic: field %q: unknown field type %q", name, def.Type)
		}
		m.Set(name, &def)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in declaration order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(m.defs[name])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
