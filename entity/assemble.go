package entity

import (
	"fmt"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/property"
)

// fieldScan drives one assembler pass over one buffer. It remembers the
// offset of the last successful anchor so scans for subsequent fields
// resume no earlier than the previous match, keeping a full entity decode
// linear in the buffer size. It also owns the per-field error isolation:
// a decode failure lands in the Problems map and the scan moves on.
type fieldScan struct {
	data     []byte
	pos      int
	problems Problems
}

func newFieldScan(data []byte, problems Problems) *fieldScan {
	return &fieldScan{data: data, problems: problems}
}

// value locates name at or after the current position and decodes it.
// The three outcomes mirror the error taxonomy: (v, true) on success,
// (zero, false) with no problem entry when the anchor is absent, and
// (zero, false) with a problem entry when the anchor was found but its
// value could not be decoded.
func (s *fieldScan) value(name string) (property.Value, bool) {
	hdr, ok := property.FindProperty(s.data, name, 0, s.pos)
	if !ok {
		return property.Value{}, false
	}
	s.pos = hdr.NameOffset

	v, _, err := property.DecodeRecord(s.data, hdr)
	if err != nil {
		s.problems.add(name, err)

		return property.Value{}, false
	}

	return v, true
}

func (s *fieldScan) badKind(name string, v property.Value, want string) {
	s.problems.add(name, fmt.Errorf("%w: %s holds %s, want %s",
		errs.ErrMalformed, name, v.Tag(), want))
}

// str extracts a string-valued property.
func (s *fieldScan) str(name string) *string {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	out, ok := v.Str()
	if !ok {
		s.badKind(name, v, "string")

		return nil
	}

	return &out
}

// strAny extracts the first present string property from a fallback name
// chain. Every candidate is searched from the position the chain started
// at, so an earlier-listed name stored later in the file does not shadow
// the others.
func (s *fieldScan) strAny(names ...string) *string {
	base := s.pos
	for _, name := range names {
		s.pos = base
		if out := s.str(name); out != nil {
			return out
		}
	}

	return nil
}

// int32Of extracts an integer-valued property, accepting any integer tag
// that fits in an int32. The game flips between IntProperty and
// UInt32Property for IDs across serializer versions.
func (s *fieldScan) int32Of(name string) *int32 {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	wide, ok := v.AsInt()
	if !ok {
		s.badKind(name, v, "integer")

		return nil
	}
	out := int32(wide)

	return &out
}

// uint16Of extracts a UInt16Property.
func (s *fieldScan) uint16Of(name string) *uint16 {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	out, ok := v.UInt16()
	if !ok {
		s.badKind(name, v, "uint16")

		return nil
	}

	return &out
}

// uint32Of extracts an unsigned integer property.
func (s *fieldScan) uint32Of(name string) *uint32 {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	wide, ok := v.AsInt()
	if !ok || wide < 0 {
		s.badKind(name, v, "unsigned integer")

		return nil
	}
	out := uint32(wide)

	return &out
}

// floatOf extracts a float- or double-valued property.
func (s *fieldScan) floatOf(name string) *float64 {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	out, ok := v.AsFloat64()
	if !ok {
		s.badKind(name, v, "float")

		return nil
	}

	return &out
}

// floatAny extracts the first present float property from a fallback name
// chain.
func (s *fieldScan) floatAny(names ...string) *float64 {
	base := s.pos
	for _, name := range names {
		s.pos = base
		if out := s.floatOf(name); out != nil {
			return out
		}
	}

	return nil
}

// boolOf extracts a BoolProperty.
func (s *fieldScan) boolOf(name string) *bool {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	out, ok := v.Bool()
	if !ok {
		s.badKind(name, v, "bool")

		return nil
	}

	return &out
}

// stringsOf extracts an ArrayProperty of strings. Absence and an empty
// array both return nil.
func (s *fieldScan) stringsOf(name string) []string {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	elems, ok := v.Elems()
	if !ok {
		s.badKind(name, v, "array")

		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		str, ok := e.Str()
		if !ok {
			s.badKind(name, e, "string element")

			return nil
		}
		out = append(out, str)
	}

	return out
}

// uint32sOf extracts an ArrayProperty of unsigned integers.
func (s *fieldScan) uint32sOf(name string) []uint32 {
	v, ok := s.value(name)
	if !ok {
		return nil
	}
	elems, ok := v.Elems()
	if !ok {
		s.badKind(name, v, "array")

		return nil
	}
	out := make([]uint32, 0, len(elems))
	for _, e := range elems {
		wide, ok := e.AsInt()
		if !ok {
			s.badKind(name, e, "integer element")

			return nil
		}
		out = append(out, uint32(wide))
	}

	return out
}
