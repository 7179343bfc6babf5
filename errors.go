package germanic

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeRequiredNull  = "required_null"
	CodeEmptyValue    = "empty_value"
	CodeTooLong       = "too_long"
	CodeTooBig        = "too_big"
	CodeTooDeep       = "too_deep"
	CodeInputTooLarge = "input_too_large"
	CodeParseError    = "parse_error"
	CodeSchemaError   = "schema_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted/bracket path (for example: address.street, tags[2]).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"int", "found":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at address.street
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SchemaAuthoringError reports a mistake in the schema itself rather than in
// the data being compiled, e.g. a table field declared without nested field
// definitions. The builder surfaces it separately from data errors.
type SchemaAuthoringError struct {
	Field   string
	Message string
}

func (e *SchemaAuthoringError) Error() string {
	return fmt.Sprintf("germanic: schema field %q: %s", e.Field, e.Message)
}

// pathOrRoot renders an empty path as "(root)" for human-facing messages.
func pathOrRoot(path string) string {
	if path == "" {
		return "(root)"
	}
	return path
}

// joinPath appends a field name to a dotted path prefix.
func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
