package germanic_test

import (
	"strings"
	"testing"

	germanic "github.com/germanicdev/germanic"
)

func TestParseSchema_PreservesDeclarationOrder(t *testing.T) {
	schema := mustSchema(t, `{
		"schema_id": "order.v1",
		"version": 1,
		"fields": {
			"zulu":  { "type": "string" },
			"alpha": { "type": "int" },
			"mike":  { "type": "bool" }
		}
	}`)
	keys := schema.Fields.Keys()
	want := []string{"zulu", "alpha", "mike"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestParseSchema_AllFieldTypes(t *testing.T) {
	schema := mustSchema(t, `{
		"schema_id": "types.v1",
		"version": 1,
		"fields": {
			"s":  { "type": "string" },
			"b":  { "type": "bool" },
			"i":  { "type": "int" },
			"f":  { "type": "float" },
			"sa": { "type": "[string]" },
			"ia": { "type": "[int]" },
			"t":  { "type": "table", "fields": { "x": { "type": "string" } } }
		}
	}`)
	if schema.FieldCount() != 7 {
		t.Fatalf("field count = %d", schema.FieldCount())
	}
	tbl, _ := schema.Fields.Get("t")
	if tbl.Fields == nil || tbl.Fields.Len() != 1 {
		t.Fatalf("nested fields not parsed: %v", tbl.Fields)
	}
}

func TestParseSchema_RejectsUnknownFieldType(t *testing.T) {
	_, _, err := germanic.ParseSchema([]byte(`{
		"schema_id": "bad.v1",
		"version": 1,
		"fields": { "a": { "type": "datetime" } }
	}`))
	if err == nil || !strings.Contains(err.Error(), "datetime") {
		t.Fatalf("expected unknown-type error naming the type, got %v", err)
	}
}

func TestParseSchema_IdentityChecks(t *testing.T) {
	if _, _, err := germanic.ParseSchema([]byte(`{"version":1,"fields":{}}`)); err == nil {
		t.Fatalf("expected missing schema_id error")
	}
	if _, _, err := germanic.ParseSchema([]byte(`{"schema_id":"x.v1","fields":{}}`)); err == nil {
		t.Fatalf("expected missing version error")
	}
}

func TestSchemaMarshal_RoundTrip(t *testing.T) {
	schema := restaurantSchema(t)
	data, err := schema.MarshalIndentJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, warnings, err := germanic.ParseSchema(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}

	if again.SchemaID != schema.SchemaID || again.Version != schema.Version {
		t.Fatalf("identity lost: %s v%d", again.SchemaID, again.Version)
	}
	keys := schema.Fields.Keys()
	keysAgain := again.Fields.Keys()
	for i := range keys {
		if keys[i] != keysAgain[i] {
			t.Fatalf("order lost: %v vs %v", keys, keysAgain)
		}
	}
	addr, _ := again.Fields.Get("address")
	country, _ := addr.Fields.Get("country")
	if country.Default == nil || *country.Default != "DE" {
		t.Fatalf("default lost: %v", country.Default)
	}
}

func TestParseSchemaYAML_NativeDialect(t *testing.T) {
	schema, warnings, err := germanic.ParseSchemaYAML([]byte(`
schema_id: de.dining.restaurant.v1
version: 1
fields:
  name:
    type: string
    required: true
  rating:
    type: float
  address:
    type: table
    fields:
      city:
        type: string
        required: true
      country:
        type: string
        default: DE
`))
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	if schema.SchemaID != "de.dining.restaurant.v1" || schema.Version != 1 {
		t.Fatalf("identity: %s v%d", schema.SchemaID, schema.Version)
	}

	keys := schema.Fields.Keys()
	want := []string{"name", "rating", "address"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("yaml order = %v, want %v", keys, want)
		}
	}
	name, _ := schema.Fields.Get("name")
	if !name.Required {
		t.Fatalf("required flag lost through yaml")
	}
	addr, _ := schema.Fields.Get("address")
	country, _ := addr.Fields.Get("country")
	if country.Default == nil || *country.Default != "DE" {
		t.Fatalf("default lost through yaml: %v", country.Default)
	}
}

func TestParseSchemaYAML_Draft7Dialect(t *testing.T) {
	schema, warnings, err := germanic.ParseSchemaYAML([]byte(`
$schema: http://json-schema.org/draft-07/schema#
$id: yaml.menu.v1
type: object
properties:
  dish:
    type: string
  price:
    type: number
required:
  - dish
`))
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	if schema.SchemaID != "yaml.menu.v1" {
		t.Fatalf("id = %q", schema.SchemaID)
	}
	dish, _ := schema.Fields.Get("dish")
	price, _ := schema.Fields.Get("price")
	if !dish.Required || dish.Type != germanic.TypeString {
		t.Fatalf("dish = %+v", dish)
	}
	if price.Required || price.Type != germanic.TypeFloat {
		t.Fatalf("price = %+v", price)
	}
}

func TestParseSchemaYAML_Invalid(t *testing.T) {
	if _, _, err := germanic.ParseSchemaYAML([]byte("{unbalanced")); err == nil {
		t.Fatalf("expected error for invalid yaml")
	}
}

func TestFieldMapSet_ReplacesInPlace(t *testing.T) {
	var m germanic.FieldMap
	m.Set("a", &germanic.FieldDefinition{Type: germanic.TypeString})
	m.Set("b", &germanic.FieldDefinition{Type: germanic.TypeInt})
	m.Set("a", &germanic.FieldDefinition{Type: germanic.TypeBool})
	if m.Len() != 2 {
		t.Fatalf("len = %d", m.Len())
	}
	name, def := m.At(0)
	if name != "a" || def.Type != germanic.TypeBool {
		t.Fatalf("at(0) = %s %q", name, def.Type)
	}
}
