package property

import (
	"fmt"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
)

// maxArrayElements bounds the element count of a single array. Tribe logs
// of busy servers run to a few thousand entries; anything past this is
// corruption, and honoring it would let a flipped bit allocate gigabytes.
const maxArrayElements = 1 << 20

// decodeArray decodes an ArrayProperty payload: an element type tag
// string, an int32 element count, then that many packed elements.
//
// The invariant enforced here is the array law: the bytes consumed by the
// element header plus all elements must equal the declared payload size.
// A mismatch means the element boundaries drifted, so the whole array is
// rejected as malformed rather than returning silently misaligned values.
func decodeArray(cur *Cursor, size int64) (Value, error) {
	start := cur.Pos()

	elemTagName, err := cur.ReadString()
	if err != nil {
		return Value{}, err
	}
	count, err := cur.ReadInt32()
	if err != nil {
		return Value{}, err
	}
	if count < 0 || count > maxArrayElements {
		return Value{}, fmt.Errorf("%w: array element count %d", errs.ErrMalformed, count)
	}

	elemTag := ParseTag(elemTagName)
	if !elemTag.Known() {
		return Value{}, fmt.Errorf("%w: array element tag %q", errs.ErrUnsupportedType, elemTagName)
	}

	elems := make([]Value, 0, min(int(count), 4096))
	for range count {
		elem, err := decodeArrayElement(cur, elemTag, elemTagName)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
	}

	if consumed := int64(cur.Pos() - start); size > 0 && consumed != size {
		return Value{}, fmt.Errorf("%w: array consumed %d bytes, declared %d",
			errs.ErrMalformed, consumed, size)
	}

	return ArrayValue(elems), nil
}

// decodeArrayElement decodes one packed element. Scalar and string
// elements carry no per-element header. Struct elements are serialized as
// bare field lists (no struct type or GUID header, unlike a top-level
// StructProperty) terminated by the "None" sentinel.
func decodeArrayElement(cur *Cursor, elemTag Tag, elemTagName string) (Value, error) {
	switch elemTag {
	case TagString, TagName:
		s, err := cur.ReadString()
		if err != nil {
			return Value{}, err
		}
		if elemTag == TagName {
			return NameValue(s), nil
		}

		return StringValue(s), nil

	case TagInt32:
		v, err := cur.ReadInt32()
		if err != nil {
			return Value{}, err
		}

		return Int32Value(v), nil

	case TagUInt16:
		v, err := cur.ReadUint16()
		if err != nil {
			return Value{}, err
		}

		return UInt16Value(v), nil

	case TagUInt32:
		v, err := cur.ReadUint32()
		if err != nil {
			return Value{}, err
		}

		return UInt32Value(v), nil

	case TagInt64:
		v, err := cur.ReadInt64()
		if err != nil {
			return Value{}, err
		}

		return Int64Value(v), nil

	case TagFloat32:
		v, err := cur.ReadFloat32()
		if err != nil {
			return Value{}, err
		}

		return Float32Value(v), nil

	case TagFloat64:
		v, err := cur.ReadFloat64()
		if err != nil {
			return Value{}, err
		}

		return Float64Value(v), nil

	case TagByte:
		v, err := cur.ReadUint8()
		if err != nil {
			return Value{}, err
		}

		return ByteValue(v), nil

	case TagBool:
		v, err := cur.ReadBool()
		if err != nil {
			return Value{}, err
		}

		return BoolValue(v), nil

	case TagObject:
		v, err := cur.ReadInt32()
		if err != nil {
			return Value{}, err
		}

		return ObjectValue(v), nil

	case TagStruct:
		fields, err := decodeFields(cur)
		if err != nil {
			return Value{}, err
		}

		return StructVal(&StructValue{Fields: fields, Strategy: StrategyWalk}), nil

	default:
		return Value{}, fmt.Errorf("%w: array element tag %q", errs.ErrUnsupportedType, elemTagName)
	}
}
