package germanic

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// InferSchema derives a schema definition from a single example document.
//
// The schema id must be provided; it cannot be inferred from data. Every
// inferred field is optional — the author edits the generated .schema.json
// to mark required fields. Field order equals the document's key order.
func InferSchema(doc any, schemaID string) (*SchemaDefinition, error) {
	obj, ok := doc.(*Object)
	if !ok {
		return nil, fmt.Errorf("germanic: schema inference requires a JSON object, found %s", valueTypeName(doc))
	}
	return &SchemaDefinition{
		SchemaID: schemaID,
		Version:  1,
		Fields:   inferFields(obj),
	}, nil
}

func inferFields(obj *Object) FieldMap {
	var fields FieldMap
	for i := 0; i < obj.Len(); i++ {
		key, val := obj.At(i)
		fields.Set(key, inferField(val))
	}
	return fields
}

func inferField(v any) *FieldDefinition {
	switch v := v.(type) {
	case string:
		return &FieldDefinition{Type: TypeString}
	case bool:
		d := "false"
		return &FieldDefinition{Type: TypeBool, Default: &d}
	case json.Number:
		if isFractional(v) {
			return &FieldDefinition{Type: TypeFloat}
		}
		return &FieldDefinition{Type: TypeInt}
	case []any:
		return &FieldDefinition{Type: inferArrayType(v)}
	case *Object:
		nested := inferFields(v)
		return &FieldDefinition{Type: TypeTable, Fields: &nested}
	default:
		// null carries no type information; fall back to string.
		return &FieldDefinition{Type: TypeString}
	}
}

// inferArrayType returns IntArray only when every element is a number;
// empty or mixed arrays default to StringArray.
func inferArrayType(arr []any) FieldType {
	if len(arr) == 0 {
		return TypeStringArray
	}
	for _, el := range arr {
		if _, ok := el.(json.Number); !ok {
			return TypeStringArray
		}
	}
	return TypeIntArray
}
