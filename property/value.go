package property

import (
	"math"

	"github.com/google/uuid"
)

// Field is one named entry inside a decoded struct. Fields keep their wire
// order; a struct may legitimately repeat a name.
type Field struct {
	Name  string
	Value Value
}

// StructValue is a decoded StructProperty payload.
//
// TypeName and GUID come from the struct header and are empty for struct
// elements inside arrays, which the format serializes as bare field lists.
// Strategy names the decode strategy that produced the fields (see
// StructStrategies); extraction pipelines record it so heuristic results
// can be audited against real saves.
type StructValue struct {
	TypeName string
	GUID     uuid.UUID
	Fields   []Field
	Strategy string
}

// Get returns the first field with the given name.
func (s *StructValue) Get(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Value is the tagged union over every decodable property payload. The
// zero Value has TagUnknown and no payload.
//
// Accessors return (value, ok) pairs; ok is false when the Value holds a
// different kind. Numeric payloads are stored as raw bits so a Value is a
// small, comparable-by-reflection struct regardless of kind.
type Value struct {
	tag    Tag
	rawTag string // original wire tag for Unknown values
	str    string
	bits   uint64
	flag   bool
	raw    []byte // opaque payload for Unknown values; owned copy
	elems  []Value
	strct  *StructValue
}

// Constructors. Each pins the Value's tag; the entity assemblers and the
// decoder registry are the only intended callers.

func StringValue(s string) Value  { return Value{tag: TagString, str: s} }
func NameValue(s string) Value    { return Value{tag: TagName, str: s} }
func Int32Value(v int32) Value    { return Value{tag: TagInt32, bits: uint64(uint32(v))} }
func UInt16Value(v uint16) Value  { return Value{tag: TagUInt16, bits: uint64(v)} }
func UInt32Value(v uint32) Value  { return Value{tag: TagUInt32, bits: uint64(v)} }
func Int64Value(v int64) Value    { return Value{tag: TagInt64, bits: uint64(v)} }
func Float32Value(v float32) Value {
	return Value{tag: TagFloat32, bits: uint64(math.Float32bits(v))}
}
func Float64Value(v float64) Value {
	return Value{tag: TagFloat64, bits: math.Float64bits(v)}
}
func ByteValue(v uint8) Value    { return Value{tag: TagByte, bits: uint64(v)} }
func BoolValue(v bool) Value     { return Value{tag: TagBool, flag: v} }
func ObjectValue(v int32) Value  { return Value{tag: TagObject, bits: uint64(uint32(v))} }
func ArrayValue(v []Value) Value { return Value{tag: TagArray, elems: v} }
func StructVal(v *StructValue) Value {
	return Value{tag: TagStruct, strct: v}
}

// UnknownValue wraps an unrecognized property's raw payload. The payload
// is copied so it does not alias the source buffer.
func UnknownValue(rawTag string, payload []byte) Value {
	raw := make([]byte, len(payload))
	copy(raw, payload)

	return Value{tag: TagUnknown, rawTag: rawTag, raw: raw}
}

// Tag returns the value's kind.
func (v Value) Tag() Tag { return v.tag }

// RawTag returns the original wire tag string for Unknown values, "" for
// recognized kinds.
func (v Value) RawTag() string { return v.rawTag }

// Str returns the string payload of a String or Name value.
func (v Value) Str() (string, bool) {
	if v.tag == TagString || v.tag == TagName {
		return v.str, true
	}

	return "", false
}

func (v Value) Int32() (int32, bool) {
	if v.tag == TagInt32 {
		return int32(uint32(v.bits)), true
	}

	return 0, false
}

func (v Value) UInt16() (uint16, bool) {
	if v.tag == TagUInt16 {
		return uint16(v.bits), true
	}

	return 0, false
}

func (v Value) UInt32() (uint32, bool) {
	if v.tag == TagUInt32 {
		return uint32(v.bits), true
	}

	return 0, false
}

func (v Value) Int64() (int64, bool) {
	if v.tag == TagInt64 {
		return int64(v.bits), true
	}

	return 0, false
}

func (v Value) Float32() (float32, bool) {
	if v.tag == TagFloat32 {
		return math.Float32frombits(uint32(v.bits)), true
	}

	return 0, false
}

func (v Value) Float64() (float64, bool) {
	if v.tag == TagFloat64 {
		return math.Float64frombits(v.bits), true
	}

	return 0, false
}

func (v Value) Byte() (uint8, bool) {
	if v.tag == TagByte {
		return uint8(v.bits), true
	}

	return 0, false
}

func (v Value) Bool() (bool, bool) {
	if v.tag == TagBool {
		return v.flag, true
	}

	return false, false
}

// Object returns the object index of an ObjectProperty value.
func (v Value) Object() (int32, bool) {
	if v.tag == TagObject {
		return int32(uint32(v.bits)), true
	}

	return 0, false
}

// Elems returns the ordered elements of an Array value.
func (v Value) Elems() ([]Value, bool) {
	if v.tag == TagArray {
		return v.elems, true
	}

	return nil, false
}

// Struct returns the nested fields of a Struct value.
func (v Value) Struct() (*StructValue, bool) {
	if v.tag == TagStruct && v.strct != nil {
		return v.strct, true
	}

	return nil, false
}

// Raw returns the opaque payload of an Unknown value.
func (v Value) Raw() ([]byte, bool) {
	if v.tag == TagUnknown {
		return v.raw, true
	}

	return nil, false
}

// AsFloat64 widens Float32 and Float64 values. The experience properties
// switched from float to double across game versions, so callers that
// only care about the number use this.
func (v Value) AsFloat64() (float64, bool) {
	switch v.tag {
	case TagFloat32:
		return float64(math.Float32frombits(uint32(v.bits))), true
	case TagFloat64:
		return math.Float64frombits(v.bits), true
	default:
		return 0, false
	}
}

// AsInt widens every integer kind to int64.
func (v Value) AsInt() (int64, bool) {
	switch v.tag {
	case TagInt32, TagObject:
		return int64(int32(uint32(v.bits))), true
	case TagUInt16, TagByte:
		return int64(v.bits), true
	case TagUInt32:
		return int64(uint32(v.bits)), true
	case TagInt64:
		return int64(v.bits), true
	default:
		return 0, false
	}
}
