package germanic

import (
	"github.com/germanicdev/germanic/grm"
)

// Compile is the end-to-end "document in, artifact out" operation: parse the
// schema (dialect auto-detected), decode and size-gate the document, validate
// it, build the binary payload and prepend a container header. Stages are
// strictly sequential and fail-fast relative to each other; within a stage,
// violations are aggregated. The returned warnings come from JSON Schema
// conversion and are empty for the native dialect.
func Compile(schemaSrc, docSrc []byte) ([]byte, []string, error) {
	schema, warnings, err := ParseSchema(schemaSrc)
	if err != nil {
		return nil, nil, err
	}

	doc, err := DecodeDocument(docSrc)
	if err != nil {
		return nil, warnings, err
	}
	if iss := PreValidate(docSrc, doc); len(iss) > 0 {
		return nil, warnings, iss
	}

	artifact, err := compileChecked(schema, doc)
	if err != nil {
		return nil, warnings, err
	}
	return artifact, warnings, nil
}

// CompileValue compiles an already-decoded document against an already-built
// schema. The raw-size ceiling cannot be applied without the original text;
// the remaining structural checks still run.
func CompileValue(schema *SchemaDefinition, doc any) ([]byte, error) {
	if iss := PreValidateValue(doc); len(iss) > 0 {
		return nil, iss
	}
	return compileChecked(schema, doc)
}

func compileChecked(schema *SchemaDefinition, doc any) ([]byte, error) {
	if iss := ValidateDocument(schema, doc); len(iss) > 0 {
		return nil, iss
	}

	payload, err := BuildPayload(schema, doc)
	if err != nil {
		return nil, err
	}

	header := grm.NewHeader(schema.SchemaID).Bytes()
	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, payload...)
	return out, nil
}
