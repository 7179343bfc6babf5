package germanic_test

import (
	"testing"

	germanic "github.com/germanicdev/germanic"
)

// mustDoc decodes a JSON document or fails the test.
func mustDoc(t *testing.T, src string) any {
	t.Helper()
	doc, err := germanic.DecodeDocument([]byte(src))
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return doc
}

// mustSchema parses a native-dialect schema or fails the test.
func mustSchema(t *testing.T, src string) *germanic.SchemaDefinition {
	t.Helper()
	schema, warnings, err := germanic.ParseSchema([]byte(src))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings for native schema: %v", warnings)
	}
	return schema
}

const restaurantSchemaJSON = `{
  "schema_id": "de.dining.restaurant.v1",
  "version": 1,
  "fields": {
    "name":    { "type": "string", "required": true },
    "cuisine": { "type": "string" },
    "rating":  { "type": "float" },
    "tags":    { "type": "[string]" },
    "address": {
      "type": "table",
      "required": true,
      "fields": {
        "street":  { "type": "string", "required": true },
        "city":    { "type": "string", "required": true },
        "country": { "type": "string", "default": "DE" }
      }
    }
  }
}`

func restaurantSchema(t *testing.T) *germanic.SchemaDefinition {
	t.Helper()
	return mustSchema(t, restaurantSchemaJSON)
}

// hasIssue reports whether any issue matches path and code.
func hasIssue(iss germanic.Issues, path, code string) bool {
	for _, it := range iss {
		if it.Path == path && it.Code == code {
			return true
		}
	}
	return false
}
