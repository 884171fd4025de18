package property

import "bytes"

// RecordHeader describes a property record located by the anchor scanner.
type RecordHeader struct {
	// NameOffset is the offset of the first byte of the property name
	// (after its length prefix).
	NameOffset int
	// Name is the matched property name.
	Name string
	// TagName is the declared type tag string as it appears on the wire.
	TagName string
	// Tag is the parsed tag; TagUnknown for a well-formed but
	// unrecognized tag string.
	Tag Tag
	// Size is the declared byte count of the value payload. The scanner
	// passes it through unvalidated; the decoder rejects negative or
	// oversized values.
	Size int64
	// ValueOffset is the offset of the first value byte (after the
	// declared size and the padding byte).
	ValueOffset int
}

// End returns the offset just past the record's value payload, or just
// past the header when the declared size is unusable.
func (h RecordHeader) End() int {
	if h.Size > 0 {
		return h.ValueOffset + int(h.Size)
	}

	return h.ValueOffset
}

// FindProperty locates the nth occurrence of a named property record at or
// after offset from.
//
// A name match alone is not a sufficient anchor: the same bytes can occur
// inside string values or opaque blobs. A candidate is accepted only when
// the four bytes before the name decode as a length prefix of exactly
// len(name)+1 (the name with its NUL terminator) and the bytes following
// the name parse as a well-formed type tag string. Candidates failing
// either check are skipped, not errors.
//
// Occurrence 0 is the first accepted match at or after from. The second
// return is false when the buffer holds no such occurrence; an absent
// property is the expected representation of an optional field, not a
// malformed record.
func FindProperty(data []byte, name string, occurrence int, from int) (RecordHeader, bool) {
	if name == "" || occurrence < 0 || from < 0 {
		return RecordHeader{}, false
	}

	search := []byte(name)
	pos := from
	for {
		idx := bytes.Index(data[pos:], search)
		if idx < 0 {
			return RecordHeader{}, false
		}
		nameOff := pos + idx
		pos = nameOff + 1

		hdr, ok := parseHeaderAt(data, name, nameOff)
		if !ok {
			continue
		}
		if occurrence == 0 {
			return hdr, true
		}
		occurrence--
	}
}

// parseHeaderAt validates a candidate anchor at nameOff and parses the
// remainder of the record header.
func parseHeaderAt(data []byte, name string, nameOff int) (RecordHeader, bool) {
	cur := NewCursor(data)

	// Length prefix sits immediately before the name bytes and must count
	// the name plus its NUL terminator.
	if nameOff < 4 {
		return RecordHeader{}, false
	}
	if err := cur.Seek(nameOff - 4); err != nil {
		return RecordHeader{}, false
	}
	prefix, err := cur.ReadInt32()
	if err != nil || prefix != int32(len(name)+1) {
		return RecordHeader{}, false
	}

	// The name's NUL terminator, then the type tag string.
	if err := cur.Seek(nameOff + len(name) + 1); err != nil {
		return RecordHeader{}, false
	}
	tagName, err := cur.ReadString()
	if err != nil || !WellFormedTagName(tagName) {
		return RecordHeader{}, false
	}

	size, err := cur.ReadInt64()
	if err != nil {
		return RecordHeader{}, false
	}
	// Padding byte between the declared size and the value.
	if err := cur.Skip(1); err != nil {
		return RecordHeader{}, false
	}

	return RecordHeader{
		NameOffset:  nameOff,
		Name:        name,
		TagName:     tagName,
		Tag:         ParseTag(tagName),
		Size:        size,
		ValueOffset: cur.Pos(),
	}, true
}

// CountOccurrences returns how many accepted anchors for name exist at or
// after from. Intended for diagnostics; extraction loops call FindProperty
// with increasing occurrence indices instead.
func CountOccurrences(data []byte, name string, from int) int {
	n := 0
	for {
		hdr, ok := FindProperty(data, name, 0, from)
		if !ok {
			return n
		}
		n++
		from = hdr.NameOffset + 1
	}
}
