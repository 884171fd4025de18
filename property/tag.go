package property

import "strings"

// Tag identifies a property's value encoding. The set is closed: any tag
// string outside it maps to TagUnknown, which the decoders carry as an
// opaque value instead of aborting the surrounding entity.
type Tag uint8

const (
	TagUnknown Tag = iota
	TagString      // StrProperty
	TagName        // NameProperty, same wire layout as StrProperty
	TagInt32       // IntProperty
	TagUInt16      // UInt16Property
	TagUInt32      // UInt32Property
	TagInt64       // Int64Property
	TagFloat32     // FloatProperty
	TagFloat64     // DoubleProperty
	TagByte        // ByteProperty
	TagBool        // BoolProperty
	TagObject      // ObjectProperty, an int32 object index
	TagArray       // ArrayProperty
	TagStruct      // StructProperty
)

// tagNames maps each recognized tag to its wire string.
var tagNames = map[Tag]string{
	TagString:  "StrProperty",
	TagName:    "NameProperty",
	TagInt32:   "IntProperty",
	TagUInt16:  "UInt16Property",
	TagUInt32:  "UInt32Property",
	TagInt64:   "Int64Property",
	TagFloat32: "FloatProperty",
	TagFloat64: "DoubleProperty",
	TagByte:    "ByteProperty",
	TagBool:    "BoolProperty",
	TagObject:  "ObjectProperty",
	TagArray:   "ArrayProperty",
	TagStruct:  "StructProperty",
}

// ParseTag maps a wire tag string to its Tag. Unrecognized strings map to
// TagUnknown; they are not an error at this level.
func ParseTag(s string) Tag {
	switch s {
	case "StrProperty":
		return TagString
	case "NameProperty":
		return TagName
	case "IntProperty":
		return TagInt32
	case "UInt16Property":
		return TagUInt16
	case "UInt32Property":
		return TagUInt32
	case "Int64Property":
		return TagInt64
	case "FloatProperty":
		return TagFloat32
	case "DoubleProperty":
		return TagFloat64
	case "ByteProperty":
		return TagByte
	case "BoolProperty":
		return TagBool
	case "ObjectProperty":
		return TagObject
	case "ArrayProperty":
		return TagArray
	case "StructProperty":
		return TagStruct
	default:
		return TagUnknown
	}
}

// String returns the wire tag string, or "Unknown" for TagUnknown.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}

	return "Unknown"
}

// Known reports whether the tag is in the recognized set.
func (t Tag) Known() bool {
	return t != TagUnknown
}

// FixedSize returns the declared payload size a scalar tag must carry, and
// whether the tag has one. Bool is 0: its value byte travels outside the
// declared payload, a quirk inherited from Unreal's header-resident bools.
func (t Tag) FixedSize() (int, bool) {
	switch t {
	case TagInt32, TagUInt32, TagFloat32, TagObject:
		return 4, true
	case TagUInt16:
		return 2, true
	case TagInt64, TagFloat64:
		return 8, true
	case TagByte:
		return 1, true
	case TagBool:
		return 0, true
	default:
		return 0, false
	}
}

// WellFormedTagName reports whether s is plausible as a type tag string:
// printable ASCII with the "Property" suffix and a sane length. The anchor
// scanner uses it to reject coincidental byte matches of a property name
// inside unrelated data, where the following bytes will not parse as a
// tag. A well-formed but unrecognized tag (e.g. "TextProperty") still
// passes; it decodes as Unknown.
func WellFormedTagName(s string) bool {
	if len(s) < len("Property") || len(s) > 64 {
		return false
	}
	if !strings.HasSuffix(s, "Property") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}

	return true
}
