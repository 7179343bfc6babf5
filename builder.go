package germanic

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	flatbuffers "github.com/google/flatbuffers/go"
)

// BuildPayload constructs the FlatBuffer table payload for a document at
// runtime, with no prior code generation. The returned bytes are exactly what
// a statically generated builder produces for the same schema and data: slot
// assignment follows the schema's declared field order (vtable voffset =
// 4 + 2*index), scalars equal to their declared default are physically
// omitted, and empty or absent arrays never become zero-length vectors.
//
// The payload carries no container framing; callers prepend a grm.Header.
func BuildPayload(schema *SchemaDefinition, doc any) ([]byte, error) {
	obj, ok := doc.(*Object)
	if !ok {
		return nil, fmt.Errorf("germanic: root data must be a JSON object, found %s", valueTypeName(doc))
	}

	b := flatbuffers.NewBuilder(1024)
	root, err := buildTable(b, &schema.Fields, obj)
	if err != nil {
		return nil, err
	}
	b.Finish(root)
	return b.FinishedBytes(), nil
}

type preparedKind uint8

const (
	prepAbsent preparedKind = iota
	prepOffset
	prepBool
	prepInt
	prepFloat
)

// preparedField is a field value staged for slot writing. Offsets reference
// out-of-line data already written to the buffer; scalars carry the declared
// default alongside the value so the slot write can elide defaults.
type preparedField struct {
	kind     preparedKind
	off      flatbuffers.UOffsetT
	boolVal  bool
	boolDef  bool
	intVal   int32
	intDef   int32
	floatVal float32
	floatDef float32
}

// buildTable recursively builds one table. Offsets in the wire format only
// point backward, so construction is strictly two-phase: first every
// out-of-line value (strings, vectors, nested tables) is written bottom-up
// in declared field order, then the table context opens and the same fields
// are written into their slots in the same order.
func buildTable(b *flatbuffers.Builder, fields *FieldMap, data *Object) (flatbuffers.UOffsetT, error) {
	prepared := make([]preparedField, fields.Len())
	for i := 0; i < fields.Len(); i++ {
		name, def := fields.At(i)
		value, present := data.Get(name)
		p, err := prepareField(b, name, def, value, present)
		if err != nil {
			return 0, err
		}
		prepared[i] = p
	}

	b.StartObject(fields.Len())
	for i, p := range prepared {
		switch p.kind {
		case prepAbsent:
			// not in the vtable
		case prepOffset:
			b.PrependUOffsetTSlot(i, p.off, 0)
		case prepBool:
			b.PrependBoolSlot(i, p.boolVal, p.boolDef)
		case prepInt:
			b.PrependInt32Slot(i, p.intVal, p.intDef)
		case prepFloat:
			b.PrependFloat32Slot(i, p.floatVal, p.floatDef)
		}
	}
	return b.EndObject(), nil
}

// prepareField resolves one field's JSON value (or declared default) into a
// preparedField, writing any out-of-line bytes now. Absent scalars with a
// declared default are synthesized against the type's zero default so they
// are physically written.
func prepareField(b *flatbuffers.Builder, name string, def *FieldDefinition, value any, present bool) (preparedField, error) {
	if !present {
		if def.Default == nil {
			return preparedField{kind: prepAbsent}, nil
		}
		d := *def.Default
		switch def.Type {
		case TypeString:
			return preparedField{kind: prepOffset, off: b.CreateString(d)}, nil
		case TypeBool:
			v, _ := strconv.ParseBool(d)
			return preparedField{kind: prepBool, boolVal: v, boolDef: false}, nil
		case TypeInt:
			v, _ := strconv.ParseInt(d, 10, 32)
			return preparedField{kind: prepInt, intVal: int32(v), intDef: 0}, nil
		case TypeFloat:
			v, _ := strconv.ParseFloat(d, 32)
			return preparedField{kind: prepFloat, floatVal: float32(v), floatDef: 0}, nil
		default:
			return preparedField{kind: prepAbsent}, nil
		}
	}

	switch def.Type {
	case TypeString:
		s, _ := value.(string)
		return preparedField{kind: prepOffset, off: b.CreateString(s)}, nil

	case TypeBool:
		v, _ := value.(bool)
		return preparedField{kind: prepBool, boolVal: v, boolDef: boolDefault(def)}, nil

	case TypeInt:
		return preparedField{kind: prepInt, intVal: asInt32(value), intDef: intDefault(def)}, nil

	case TypeFloat:
		return preparedField{kind: prepFloat, floatVal: asFloat32(value), floatDef: floatDefault(def)}, nil

	case TypeStringArray:
		arr, ok := value.([]any)
		if !ok || len(arr) == 0 {
			return preparedField{kind: prepAbsent}, nil
		}
		offs := make([]flatbuffers.UOffsetT, len(arr))
		for i, el := range arr {
			s, _ := el.(string)
			offs[i] = b.CreateString(s)
		}
		b.StartVector(flatbuffers.SizeUOffsetT, len(arr), flatbuffers.SizeUOffsetT)
		for i := len(offs) - 1; i >= 0; i-- {
			b.PrependUOffsetT(offs[i])
		}
		return preparedField{kind: prepOffset, off: b.EndVector(len(arr))}, nil

	case TypeIntArray:
		arr, ok := value.([]any)
		if !ok || len(arr) == 0 {
			return preparedField{kind: prepAbsent}, nil
		}
		b.StartVector(flatbuffers.SizeInt32, len(arr), flatbuffers.SizeInt32)
		for i := len(arr) - 1; i >= 0; i-- {
			b.PrependInt32(asInt32(arr[i]))
		}
		return preparedField{kind: prepOffset, off: b.EndVector(len(arr))}, nil

	case TypeTable:
		if def.Fields == nil {
			return preparedField{}, &SchemaAuthoringError{Field: name, Message: "table field has no nested field definitions"}
		}
		obj, ok := value.(*Object)
		if !ok {
			return preparedField{kind: prepAbsent}, nil
		}
		off, err := buildTable(b, def.Fields, obj)
		if err != nil {
			return preparedField{}, err
		}
		return preparedField{kind: prepOffset, off: off}, nil
	}

	return preparedField{kind: prepAbsent}, nil
}

func asInt32(v any) int32 {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int32(i)
		}
	}
	return 0
}

func asFloat32(v any) float32 {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return float32(f)
		}
	}
	return 0
}

func boolDefault(def *FieldDefinition) bool {
	if def.Default == nil {
		return false
	}
	v, err := strconv.ParseBool(*def.Default)
	if err != nil {
		return false
	}
	return v
}

func intDefault(def *FieldDefinition) int32 {
	if def.Default == nil {
		return 0
	}
	v, err := strconv.ParseInt(*def.Default, 10, 32)
	if err != nil {
		return 0
	}
	return int32(v)
}

func floatDefault(def *FieldDefinition) float32 {
	if def.Default == nil {
		return 0
	}
	v, err := strconv.ParseFloat(*def.Default, 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
