// Package jsonschema holds a minimal JSON Schema Draft 7 representation:
// only the keyword subset the germanic converter understands, plus the
// keywords it recognizes well enough to warn about. Everything else is
// dropped by the decoder.
package jsonschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Schema is a reduced JSON Schema Draft 7 node.
type Schema struct {
	// Core
	SchemaURL   string `json:"$schema,omitempty"`
	ID          string `json:"$id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Object
	Properties *Properties `json:"properties,omitempty"`
	Required   []string    `json:"required,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Recognized but only warned about by the converter.
	Ref     string    `json:"$ref,omitempty"`
	AnyOf   []*Schema `json:"anyOf,omitempty"`
	OneOf   []*Schema `json:"oneOf,omitempty"`
	AllOf   []*Schema `json:"allOf,omitempty"`
	Enum    []any     `json:"enum,omitempty"`
	Pattern string    `json:"pattern,omitempty"`
}

// Properties is an insertion-ordered property map. Declaration order is kept
// because the converter turns it into binary slot order.
type Properties struct {
	keys  []string
	props map[string]*Schema
}

// Len returns the number of properties.
func (p *Properties) Len() int { return len(p.keys) }

// Get looks up a property by name.
func (p *Properties) Get(name string) (*Schema, bool) {
	s, ok := p.props[name]
	return s, ok
}

// At returns the property at position i in declaration order.
func (p *Properties) At(i int) (string, *Schema) {
	name := p.keys[i]
	return name, p.props[name]
}

// Keys returns the property names in declaration order.
func (p *Properties) Keys() []string { return p.keys }

// Set appends a property, or replaces it in place when already present.
func (p *Properties) Set(name string, s *Schema) {
	if p.props == nil {
		p.props = make(map[string]*Schema)
	}
	if _, ok := p.props[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.props[name] = s
}

// UnmarshalJSON decodes the properties object preserving key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("jsonschema: properties must be a JSON object")
	}
	*p = Properties{props: make(map[string]*Schema)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("jsonschema: invalid property name token %v", keyTok)
		}
		var s Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("jsonschema: property %q: %w", name, err)
		}
		p.Set(name, &s)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}
	return nil
}

// MarshalJSON encodes the properties in declaration order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.props[name])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Detect reports whether the input looks like a JSON Schema Draft 7 document
// rather than a native germanic schema.
//
// Heuristic: a top-level "$schema" key, OR "type": "object" together with
// "properties".
func Detect(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false
	}
	if _, ok := top["$schema"]; ok {
		return true
	}
	rawType, ok := top["type"]
	if !ok {
		return false
	}
	var typ string
	if err := json.Unmarshal(rawType, &typ); err != nil {
		return false
	}
	_, hasProps := top["properties"]
	return typ == "object" && hasProps
}
