package germanic

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Object is an insertion-ordered JSON object. Documents are decoded into
// Objects rather than Go maps so that key order survives the round trip;
// schema inference depends on it.
type Object struct {
	keys []string
	vals map[string]any
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Get looks up a value by key. The second result distinguishes an absent key
// from a present JSON null.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// At returns the entry at position i in document order.
func (o *Object) At(i int) (string, any) {
	key := o.keys[i]
	return key, o.vals[key]
}

// Keys returns the keys in document order. The returned slice is shared;
// callers must not mutate it.
func (o *Object) Keys() []string { return o.keys }

// Set appends a key, or replaces its value in place when already present.
func (o *Object) Set(key string, v any) {
	if o.vals == nil {
		o.vals = make(map[string]any)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// MarshalJSON encodes the object in document order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.vals[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeDocument parses JSON bytes into the ordered value model:
// *Object for objects, []any for arrays, string, bool, json.Number
// (textual form preserved) and nil for null.
func DecodeDocument(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, Issues{{Path: "(root)", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Object{vals: make(map[string]any)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid object key token %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				el, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, el)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// string, bool, json.Number or nil
		return tok, nil
	}
}

// valueTypeName returns the JSON type name of a decoded value for error
// messages.
func valueTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// isFractional reports whether a number's textual form carries a fractional
// separator. Int vs. Float disambiguation is deliberately textual: "2.0" is
// a float, "2" is an int. Inferred schemas rely on the same heuristic, so it
// must not be made stricter.
func isFractional(n json.Number) bool {
	return strings.Contains(n.String(), ".")
}
