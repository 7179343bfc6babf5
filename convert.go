package germanic

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/germanicdev/germanic/jsonschema"
)

// fallbackSchemaID is used when a converted JSON Schema carries neither an
// "$id" nor a "title".
const fallbackSchemaID = "converted.json-schema.v1"

// convertJSONSchema converts a JSON Schema Draft 7 document into the
// canonical SchemaDefinition. Unsupported keywords are never silently
// reinterpreted: each produces one warning string and is otherwise ignored.
// Only a non-object root is a hard error, since it cannot be represented.
func convertJSONSchema(data []byte) (*SchemaDefinition, []string, error) {
	var js jsonschema.Schema
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, nil, fmt.Errorf("germanic: invalid JSON Schema document: %w", err)
	}

	// Root must be "type": "object"; an absent type is acceptable when
	// properties exist.
	if js.Type != "" && js.Type != "object" {
		return nil, nil, fmt.Errorf("germanic: JSON Schema root must be %q, found %q", "object", js.Type)
	}

	schemaID := js.ID
	if schemaID == "" && js.Title != "" {
		schemaID = slugify(js.Title)
	}
	if schemaID == "" {
		schemaID = fallbackSchemaID
	}

	var warnings []string
	var fields FieldMap
	if js.Properties != nil {
		fields = convertProperties(js.Properties, js.Required, &warnings)
	}

	return &SchemaDefinition{
		SchemaID: schemaID,
		Version:  1,
		Fields:   fields,
	}, warnings, nil
}

func convertProperties(props *jsonschema.Properties, requiredList []string, warnings *[]string) FieldMap {
	var fields FieldMap
	for i := 0; i < props.Len(); i++ {
		name, prop := props.At(i)
		fields.Set(name, convertProperty(name, prop, contains(requiredList, name), warnings))
	}
	return fields
}

func convertProperty(name string, prop *jsonschema.Schema, required bool, warnings *[]string) *FieldDefinition {
	if prop.Ref != "" {
		*warnings = append(*warnings, fmt.Sprintf("field %q: $ref not resolved (not supported)", name))
	}
	if prop.AnyOf != nil {
		*warnings = append(*warnings, fmt.Sprintf("field %q: anyOf not supported, ignored", name))
	}
	if prop.OneOf != nil {
		*warnings = append(*warnings, fmt.Sprintf("field %q: oneOf not supported, ignored", name))
	}
	if prop.AllOf != nil {
		*warnings = append(*warnings, fmt.Sprintf("field %q: allOf not supported, ignored", name))
	}
	if prop.Enum != nil {
		*warnings = append(*warnings, fmt.Sprintf("field %q: enum constraint ignored", name))
	}
	if prop.Pattern != "" {
		*warnings = append(*warnings, fmt.Sprintf("field %q: pattern constraint ignored", name))
	}

	typ := prop.Type
	if typ == "" {
		typ = "string"
	}

	var fieldType FieldType
	var nested *FieldMap
	switch typ {
	case "string":
		fieldType = TypeString
	case "boolean":
		fieldType = TypeBool
	case "integer":
		fieldType = TypeInt
	case "number":
		fieldType = TypeFloat
	case "object":
		fieldType = TypeTable
		nested = &FieldMap{}
		if prop.Properties != nil {
			fm := convertProperties(prop.Properties, prop.Required, warnings)
			nested = &fm
		}
	case "array":
		fieldType = resolveArrayType(name, prop.Items, warnings)
	default:
		*warnings = append(*warnings, fmt.Sprintf("field %q: unknown type %q, defaulting to string", name, typ))
		fieldType = TypeString
	}

	return &FieldDefinition{
		Type:     fieldType,
		Required: required,
		Default:  convertDefault(prop.Default),
		Fields:   nested,
	}
}

// resolveArrayType maps a JSON Schema "items" declaration onto the two
// supported vector types. Unspecified items default to a string array;
// unsupported item types degrade to a string array with a warning.
func resolveArrayType(name string, items *jsonschema.Schema, warnings *[]string) FieldType {
	if items == nil {
		return TypeStringArray
	}
	switch items.Type {
	case "string", "":
		return TypeStringArray
	case "integer", "number":
		return TypeIntArray
	default:
		*warnings = append(*warnings, fmt.Sprintf("field %q: unsupported array item type %q, defaulting to string array", name, items.Type))
		return TypeStringArray
	}
}

// convertDefault renders a JSON Schema default value as the canonical string
// form. Non-string defaults keep their compact JSON text.
func convertDefault(v any) *string {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(b)
	return &s
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
