package property

import (
	"fmt"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
)

// DecodeValue decodes a single value of the given tag at the cursor's
// current position. size is the record's declared payload size; pass the
// value from the RecordHeader.
//
// Dispatch is a closed switch over the tag set. A TagUnknown with a usable
// declared size yields an opaque Unknown value covering exactly that many
// bytes; without one the decode fails with errs.ErrUnsupportedType, since
// there is no way to tell where the value ends.
//
// Absence is never represented here: a decoder runs only after the scanner
// found an anchor, so every failure is a structural problem (truncation,
// malformed sizes, unsupported tags), not a missing field.
func DecodeValue(cur *Cursor, tag Tag, rawTag string, size int64) (Value, error) {
	if size < 0 {
		return Value{}, fmt.Errorf("%w: negative declared size %d", errs.ErrMalformed, size)
	}
	if want, ok := tag.FixedSize(); ok && size != int64(want) {
		return Value{}, fmt.Errorf("%w: %s declared size %d, want %d",
			errs.ErrMalformed, tag, size, want)
	}

	switch tag {
	case TagString, TagName:
		start := cur.Pos()
		s, err := cur.ReadString()
		if err != nil {
			return Value{}, err
		}
		if size > 0 && int64(cur.Pos()-start) != size {
			return Value{}, fmt.Errorf("%w: string consumed %d bytes, declared %d",
				errs.ErrMalformed, cur.Pos()-start, size)
		}
		if tag == TagName {
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
		// Declared size 0; the single value byte follows the header.
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

	case TagArray:
		return decodeArray(cur, size)

	case TagStruct:
		return decodeStructTop(cur, size)

	default: // TagUnknown
		if size == 0 {
			return Value{}, fmt.Errorf("%w: tag %q with no declared size",
				errs.ErrUnsupportedType, rawTag)
		}
		raw, err := cur.ReadBytes(int(size))
		if err != nil {
			return Value{}, err
		}

		return UnknownValue(rawTag, raw), nil
	}
}

// DecodeRecord decodes the value of a record located by FindProperty.
// It is the (buffer, header) → (value, bytes consumed) form of the
// engine: a fresh cursor is positioned at the header's value offset, so
// the call has no effect on any other decode.
func DecodeRecord(data []byte, hdr RecordHeader) (Value, int, error) {
	cur := NewCursor(data)
	if err := cur.Seek(hdr.ValueOffset); err != nil {
		return Value{}, 0, err
	}

	v, err := DecodeValue(&cur, hdr.Tag, hdr.TagName, hdr.Size)
	if err != nil {
		return Value{}, 0, err
	}

	return v, cur.Pos() - hdr.ValueOffset, nil
}
