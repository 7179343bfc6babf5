package germanic

import "fmt"

// Structural ceilings checked before any schema-aware logic runs. They bound
// worst-case work ahead of time; nothing is interrupted mid-flight.
const (
	// MaxInputSize is the maximum total input size in bytes (5 MB).
	MaxInputSize = 5_242_880

	// MaxStringLength is the maximum byte length of a single string value (1 MB).
	MaxStringLength = 1_048_576

	// MaxArrayElements is the maximum number of elements in an array.
	MaxArrayElements = 10_000

	// MaxNestingDepth is the maximum nesting depth for objects/arrays.
	MaxNestingDepth = 32
)

// PreValidate runs schema-agnostic structural checks over the raw input and
// its decoded value tree. All violations across the whole tree are collected;
// nothing here is fail-fast. An empty result means the document passed.
func PreValidate(raw []byte, doc any) Issues {
	var iss Issues
	if len(raw) > MaxInputSize {
		iss = AppendIssues(iss, Issue{
			Path:    "(root)",
			Code:    CodeInputTooLarge,
			Message: fmt.Sprintf("input size %d bytes exceeds maximum of %d bytes", len(raw), MaxInputSize),
			Params:  map[string]any{"size": len(raw), "max": MaxInputSize},
		})
	}
	return preValidateTree(doc, iss)
}

// PreValidateValue runs the same checks when only the decoded value is
// available (no raw-size check).
func PreValidateValue(doc any) Issues {
	return preValidateTree(doc, nil)
}

func preValidateTree(doc any, iss Issues) Issues {
	if _, ok := doc.(*Object); !ok {
		iss = AppendIssues(iss, Issue{
			Path:    "(root)",
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("expected JSON object at root, found %s", valueTypeName(doc)),
			Params:  map[string]any{"expected": "object", "found": valueTypeName(doc)},
		})
	}
	checkValue(doc, "", &iss, 0)
	return iss
}

// checkValue recursively flags oversized strings, oversized arrays and
// excessive nesting. The depth check runs on entry, before descending, so
// recursion itself stays bounded.
func checkValue(v any, path string, iss *Issues, depth int) {
	if depth > MaxNestingDepth {
		*iss = AppendIssues(*iss, Issue{
			Path:    pathOrRoot(path),
			Code:    CodeTooDeep,
			Message: fmt.Sprintf("nesting depth exceeds maximum of %d", MaxNestingDepth),
			Params:  map[string]any{"max": MaxNestingDepth},
		})
		return
	}

	switch v := v.(type) {
	case string:
		if len(v) > MaxStringLength {
			*iss = AppendIssues(*iss, Issue{
				Path:    pathOrRoot(path),
				Code:    CodeTooLong,
				Message: fmt.Sprintf("string length %d exceeds maximum of %d bytes", len(v), MaxStringLength),
				Params:  map[string]any{"length": len(v), "max": MaxStringLength},
			})
		}
	case []any:
		if len(v) > MaxArrayElements {
			*iss = AppendIssues(*iss, Issue{
				Path:    pathOrRoot(path),
				Code:    CodeTooBig,
				Message: fmt.Sprintf("array has %d elements, maximum is %d", len(v), MaxArrayElements),
				Params:  map[string]any{"elements": len(v), "max": MaxArrayElements},
			})
		}
		for i, item := range v {
			checkValue(item, fmt.Sprintf("%s[%d]", pathOrRoot(path), i), iss, depth+1)
		}
	case *Object:
		for i := 0; i < v.Len(); i++ {
			key, val := v.At(i)
			checkValue(val, joinPath(path, key), iss, depth+1)
		}
	}
}
