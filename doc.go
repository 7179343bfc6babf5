// Package germanic compiles loosely-typed JSON documents into compact,
// schema-typed binary artifacts (.grm) with no code generation.
//
//   - A runtime schema model (SchemaDefinition) with strictly ordered fields;
//     field order determines binary slot addressing and is never re-sorted.
//   - Two textual schema dialects, auto-detected: the native .schema.json
//     dialect and a constrained JSON Schema Draft 7 subset.
//   - Schema inference from a single example document.
//   - A stable error model via Issues (dotted path, code, message).
//   - A dynamic FlatBuffer table builder whose output is byte-compatible with
//     a statically generated builder for the same logical schema.
//
// Design policy:
//   - Keep only public APIs in the root package; the container header lives
//     under grm/, the Draft 7 document model under jsonschema/, and the CLI
//     under cmd/germanic.
//   - Schemas are immutable after construction and safe for concurrent
//     read-only use; every compilation owns its own buffer and accumulator.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema, warnings, err := germanic.ParseSchema(schemaBytes)
//	artifact, err := germanic.CompileValue(schema, doc)
//
//	artifact, warnings, err := germanic.Compile(schemaBytes, docBytes)
package germanic
