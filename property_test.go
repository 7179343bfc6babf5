package germanic_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	germanic "github.com/germanicdev/germanic"
)

// TestProperty_CompilationIsDeterministic checks that compiling the same
// document twice always yields identical bytes, across randomized field
// values. Byte-level determinism is what makes artifacts diffable and
// cacheable by content hash.
func TestProperty_CompilationIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	schemaSrc := []byte(`{
		"schema_id": "prop.v1",
		"version": 1,
		"fields": {
			"name":   { "type": "string", "required": true },
			"count":  { "type": "int" },
			"active": { "type": "bool" },
			"tags":   { "type": "[string]" }
		}
	}`)

	properties.Property("same document compiles to the same bytes", prop.ForAll(
		func(name string, count int32, active bool, tags []string) bool {
			doc := buildJSONDoc(name, count, active, tags)

			first, _, err := germanic.Compile(schemaSrc, doc)
			if err != nil {
				return false
			}
			second, _, err := germanic.Compile(schemaSrc, doc)
			if err != nil {
				return false
			}
			return bytes.Equal(first, second)
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.Int32(),
		gen.Bool(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("unknown keys never change the artifact", prop.ForAll(
		func(name string, count int32, extra string) bool {
			base := buildJSONDoc(name, count, true, nil)
			withExtra := []byte(strings.TrimSuffix(string(base), "}") +
				fmt.Sprintf(`,"unknown_%s":123}`, extra))

			a1, _, err := germanic.Compile(schemaSrc, base)
			if err != nil {
				return false
			}
			a2, _, err := germanic.Compile(schemaSrc, withExtra)
			if err != nil {
				return false
			}
			return bytes.Equal(a1, a2)
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.Int32(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestProperty_InferredSchemaAcceptsItsDocument checks that any flat document
// validates and compiles under the schema inferred from itself.
func TestProperty_InferredSchemaAcceptsItsDocument(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("document compiles under its own inferred schema", prop.ForAll(
		func(name string, count int32, active bool, tags []string) bool {
			src := buildJSONDoc(name, count, active, tags)
			doc, err := germanic.DecodeDocument(src)
			if err != nil {
				return false
			}
			schema, err := germanic.InferSchema(doc, "inferred.v1")
			if err != nil {
				return false
			}
			if iss := germanic.ValidateDocument(schema, doc); len(iss) > 0 {
				return false
			}
			_, err = germanic.BuildPayload(schema, doc)
			return err == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.Int32(),
		gen.Bool(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// buildJSONDoc renders a document for the prop.v1 schema with explicit JSON
// encoding so generated strings cannot break the syntax.
func buildJSONDoc(name string, count int32, active bool, tags []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `{"name":%q,"count":%d,"active":%v`, name, count, active)
	if tags != nil {
		b.WriteString(`,"tags":[`)
		for i, tag := range tags {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%q", tag)
		}
		b.WriteString(`]`)
	}
	b.WriteByte('}')
	return []byte(b.String())
}
