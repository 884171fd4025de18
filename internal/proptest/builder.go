// Package proptest builds synthetic property buffers for tests.
//
// The public library is decode-only; this builder exists so tests can
// construct byte-exact fixtures (including deliberately truncated and
// malformed ones) without shipping real save files. It mirrors the grammar
// the property package decodes: little-endian, length-prefixed
// NUL-terminated strings, name/tag/size/pad/value records, "None"
// sentinels for struct payloads.
package proptest

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Builder accumulates an encoded property buffer. Methods return the
// builder for chaining; Bytes returns the accumulated buffer.
type Builder struct {
	buf []byte
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Bytes returns the accumulated buffer.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Raw appends arbitrary bytes, e.g. padding around records to prove the
// scanner skips unrelated data.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)

	return b
}

// LPString appends a length-prefixed UTF-8 string with its NUL terminator.
func (b *Builder) LPString(s string) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(len(s)+1))
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)

	return b
}

// LPStringUTF16 appends a length-prefixed UTF-16LE string (negative
// prefix) with its NUL terminator.
func (b *Builder) LPStringUTF16(s string) *Builder {
	units := utf16.Encode([]rune(s))
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(int32(-(len(units) + 1))))
	for _, u := range units {
		b.buf = binary.LittleEndian.AppendUint16(b.buf, u)
	}
	b.buf = binary.LittleEndian.AppendUint16(b.buf, 0)

	return b
}

func lpStringSize(s string) int64 {
	return int64(4 + len(s) + 1)
}

// Record appends a full property record: name, tag string, declared size,
// padding byte, then the value bytes verbatim.
func (b *Builder) Record(name, tagName string, size int64, value []byte) *Builder {
	b.LPString(name)
	b.LPString(tagName)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, uint64(size))
	b.buf = append(b.buf, 0) // padding byte
	b.buf = append(b.buf, value...)

	return b
}

// Str appends a StrProperty record.
func (b *Builder) Str(name, value string) *Builder {
	return b.Record(name, "StrProperty", lpStringSize(value), New().LPString(value).Bytes())
}

// StrUTF16 appends a StrProperty record whose value uses the two-byte
// encoding.
func (b *Builder) StrUTF16(name, value string) *Builder {
	payload := New().LPStringUTF16(value).Bytes()

	return b.Record(name, "StrProperty", int64(len(payload)), payload)
}

// NameProp appends a NameProperty record.
func (b *Builder) NameProp(name, value string) *Builder {
	return b.Record(name, "NameProperty", lpStringSize(value), New().LPString(value).Bytes())
}

// Int32 appends an IntProperty record.
func (b *Builder) Int32(name string, v int32) *Builder {
	return b.Record(name, "IntProperty", 4, binary.LittleEndian.AppendUint32(nil, uint32(v)))
}

// UInt16 appends a UInt16Property record.
func (b *Builder) UInt16(name string, v uint16) *Builder {
	return b.Record(name, "UInt16Property", 2, binary.LittleEndian.AppendUint16(nil, v))
}

// UInt32 appends a UInt32Property record.
func (b *Builder) UInt32(name string, v uint32) *Builder {
	return b.Record(name, "UInt32Property", 4, binary.LittleEndian.AppendUint32(nil, v))
}

// Int64 appends an Int64Property record.
func (b *Builder) Int64(name string, v int64) *Builder {
	return b.Record(name, "Int64Property", 8, binary.LittleEndian.AppendUint64(nil, uint64(v)))
}

// Float32 appends a FloatProperty record.
func (b *Builder) Float32(name string, v float32) *Builder {
	return b.Record(name, "FloatProperty", 4, binary.LittleEndian.AppendUint32(nil, math.Float32bits(v)))
}

// Float64 appends a DoubleProperty record.
func (b *Builder) Float64(name string, v float64) *Builder {
	return b.Record(name, "DoubleProperty", 8, binary.LittleEndian.AppendUint64(nil, math.Float64bits(v)))
}

// Byte appends a ByteProperty record.
func (b *Builder) Byte(name string, v uint8) *Builder {
	return b.Record(name, "ByteProperty", 1, []byte{v})
}

// Bool appends a BoolProperty record: declared size 0, value byte after
// the padding byte.
func (b *Builder) Bool(name string, v bool) *Builder {
	value := []byte{0}
	if v {
		value[0] = 1
	}

	return b.Record(name, "BoolProperty", 0, value)
}

// Object appends an ObjectProperty record.
func (b *Builder) Object(name string, idx int32) *Builder {
	return b.Record(name, "ObjectProperty", 4, binary.LittleEndian.AppendUint32(nil, uint32(idx)))
}

// Unknown appends a record with an unrecognized (but well-formed) tag
// string and an opaque payload.
func (b *Builder) Unknown(name, tagName string, payload []byte) *Builder {
	return b.Record(name, tagName, int64(len(payload)), payload)
}

// TruncatedScalar appends a record whose declared size promises more value
// bytes than it actually carries (and than remain in the buffer).
func (b *Builder) TruncatedScalar(name, tagName string, declared int64, value []byte) *Builder {
	return b.Record(name, tagName, declared, value)
}

// None appends the "None" end sentinel (a bare length-prefixed string).
func (b *Builder) None() *Builder {
	return b.LPString("None")
}

// arrayPayload encodes an element tag, count, and packed element bytes.
func arrayPayload(elemTag string, count int, elems []byte) []byte {
	p := New().LPString(elemTag)
	p.buf = binary.LittleEndian.AppendUint32(p.buf, uint32(count))
	p.buf = append(p.buf, elems...)

	return p.buf
}

// ArrayStr appends an ArrayProperty of StrProperty elements.
func (b *Builder) ArrayStr(name string, values []string) *Builder {
	elems := New()
	for _, v := range values {
		elems.LPString(v)
	}
	payload := arrayPayload("StrProperty", len(values), elems.Bytes())

	return b.Record(name, "ArrayProperty", int64(len(payload)), payload)
}

// ArrayUInt32 appends an ArrayProperty of UInt32Property elements.
func (b *Builder) ArrayUInt32(name string, values []uint32) *Builder {
	elems := New()
	for _, v := range values {
		elems.buf = binary.LittleEndian.AppendUint32(elems.buf, v)
	}
	payload := arrayPayload("UInt32Property", len(values), elems.Bytes())

	return b.Record(name, "ArrayProperty", int64(len(payload)), payload)
}

// ArrayStructs appends an ArrayProperty of StructProperty elements. Each
// element function fills one element's fields; the element's "None"
// sentinel is appended automatically.
func (b *Builder) ArrayStructs(name string, elements ...func(*Builder)) *Builder {
	elems := New()
	for _, fill := range elements {
		fill(elems)
		elems.None()
	}
	payload := arrayPayload("StructProperty", len(elements), elems.Bytes())

	return b.Record(name, "ArrayProperty", int64(len(payload)), payload)
}

// ArrayMismatched appends an ArrayProperty whose declared size disagrees
// with the bytes its elements occupy, violating the array law.
func (b *Builder) ArrayMismatched(name string, values []uint32, declaredDelta int64) *Builder {
	elems := New()
	for _, v := range values {
		elems.buf = binary.LittleEndian.AppendUint32(elems.buf, v)
	}
	payload := arrayPayload("UInt32Property", len(values), elems.Bytes())

	return b.Record(name, "ArrayProperty", int64(len(payload))+declaredDelta, payload)
}

// Struct appends a top-level StructProperty record: struct type name,
// 16-byte GUID, fields, "None" sentinel.
func (b *Builder) Struct(name, typeName string, guid [16]byte, fill func(*Builder)) *Builder {
	payload := New().LPString(typeName)
	payload.buf = append(payload.buf, guid[:]...)
	fill(payload)
	payload.None()

	return b.Record(name, "StructProperty", int64(len(payload.buf)), payload.buf)
}

// StructRaw appends a StructProperty record whose payload after the type
// name and GUID is arbitrary bytes that do not follow the field grammar.
// Used to exercise the anchor-scan fallback.
func (b *Builder) StructRaw(name, typeName string, guid [16]byte, payload []byte) *Builder {
	body := New().LPString(typeName)
	body.buf = append(body.buf, guid[:]...)
	body.buf = append(body.buf, payload...)

	return b.Record(name, "StructProperty", int64(len(body.buf)), body.buf)
}
