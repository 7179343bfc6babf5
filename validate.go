package germanic

import (
	json "github.com/goccy/go-json"

	"github.com/germanicdev/germanic/i18n"
)

// ValidateDocument checks a decoded document against a schema: presence,
// nullability, type compatibility, emptiness, and nested tables. All
// violations across all fields accumulate into one Issues list; checks
// short-circuit within a field only, never across fields.
//
// Keys present in the document but absent from the schema are silently
// dropped. This is intentional forward-compatibility: schemas may evolve
// without breaking older documents.
func ValidateDocument(schema *SchemaDefinition, doc any) Issues {
	obj, ok := doc.(*Object)
	if !ok {
		return Issues{{
			Path:    "(root)",
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, nil),
			Params:  map[string]any{"expected": "object", "found": valueTypeName(doc)},
		}}
	}
	var iss Issues
	validateFields(&schema.Fields, obj, "", &iss)
	return iss
}

func validateFields(fields *FieldMap, data *Object, prefix string, iss *Issues) {
	for i := 0; i < fields.Len(); i++ {
		name, def := fields.At(i)
		path := joinPath(prefix, name)

		value, present := data.Get(name)
		if !present {
			if def.Required {
				*iss = AppendIssues(*iss, Issue{Path: path, Code: CodeRequired, Message: i18n.T(CodeRequired, nil)})
			}
			continue
		}

		// null is not further typed; it only violates required fields.
		if value == nil {
			if def.Required {
				*iss = AppendIssues(*iss, Issue{Path: path, Code: CodeRequiredNull, Message: i18n.T(CodeRequiredNull, nil)})
			}
			continue
		}

		if !typeCompatible(def.Type, value) {
			*iss = AppendIssues(*iss, Issue{
				Path:    path,
				Code:    CodeInvalidType,
				Message: i18n.T(CodeInvalidType, nil),
				Params:  map[string]any{"expected": string(def.Type), "found": valueTypeName(value)},
			})
			continue
		}

		if def.Required && isEmpty(def.Type, value) {
			*iss = AppendIssues(*iss, Issue{Path: path, Code: CodeEmptyValue, Message: i18n.T(CodeEmptyValue, nil)})
		}

		// An absent nested schema means nothing further to check.
		if def.Type == TypeTable && def.Fields != nil {
			validateFields(def.Fields, value.(*Object), path, iss)
		}
	}
}

// typeCompatible implements the fixed compatibility matrix. Array element
// types are deliberately unchecked; the builder coerces them. Int accepts
// only numbers without a fractional separator, Float only numbers with one —
// the same textual heuristic inference uses.
func typeCompatible(t FieldType, v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeInt:
		n, ok := v.(json.Number)
		return ok && !isFractional(n)
	case TypeFloat:
		n, ok := v.(json.Number)
		return ok && isFractional(n)
	case TypeStringArray, TypeIntArray:
		_, ok := v.([]any)
		return ok
	case TypeTable:
		_, ok := v.(*Object)
		return ok
	}
	return false
}

func isEmpty(t FieldType, v any) bool {
	switch t {
	case TypeString:
		s, _ := v.(string)
		return s == ""
	case TypeStringArray, TypeIntArray:
		arr, _ := v.([]any)
		return len(arr) == 0
	}
	return false
}
