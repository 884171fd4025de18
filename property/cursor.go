package property

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/BoldPhoenix/ark-asa-parser/endian"
	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/google/uuid"
)

// maxStringLen caps the magnitude of a string length prefix. Longer
// prefixes are treated as corruption rather than allocated; the longest
// legitimate strings in save files are tribe log lines of a few hundred
// bytes.
const maxStringLen = 1 << 20

// Cursor is a bounds-checked sequential reader over an immutable byte
// buffer. It is a cheap value type: copy it to attempt a speculative
// decode and discard the copy on failure. The zero value is unusable; use
// NewCursor.
//
// Every read validates position+size against the buffer length and fails
// with errs.ErrTruncated instead of reading past the end. A Cursor never
// mutates its buffer.
type Cursor struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewCursor creates a cursor over data starting at offset 0, using the
// little-endian engine the save format fixes.
func NewCursor(data []byte) Cursor {
	return NewCursorWith(data, endian.GetLittleEndianEngine())
}

// NewCursorWith creates a cursor with an explicit endian engine.
func NewCursorWith(data []byte, engine endian.EndianEngine) Cursor {
	return Cursor{data: data, engine: engine}
}

// Pos returns the current offset into the buffer.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Len returns the total buffer length.
func (c *Cursor) Len() int { return len(c.data) }

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("%w: seek to %d in buffer of %d bytes", errs.ErrTruncated, pos, len(c.data))
	}
	c.pos = pos

	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative skip %d", errs.ErrMalformed, n)
	}
	if err := c.require(n); err != nil {
		return err
	}
	c.pos += n

	return nil
}

// require checks that n more bytes can be read from the current position.
func (c *Cursor) require(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return fmt.Errorf("%w: need %d bytes at offset %d, buffer has %d",
			errs.ErrTruncated, n, c.pos, len(c.data))
	}

	return nil
}

// ReadBytes returns the next n bytes and advances the cursor. The returned
// slice aliases the underlying buffer; callers that retain it past the
// buffer's lifetime must copy.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// ReadUint8 reads a single byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++

	return b, nil
}

// ReadBool reads a single byte; any non-zero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadUint8()

	return b != 0, err
}

// ReadUint16 reads a little-endian unsigned 16-bit integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := c.engine.Uint16(c.data[c.pos:])
	c.pos += 2

	return v, nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()

	return int32(v), err
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := c.engine.Uint32(c.data[c.pos:])
	c.pos += 4

	return v, nil
}

// ReadInt64 reads a little-endian signed 64-bit integer.
func (c *Cursor) ReadInt64() (int64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.data[c.pos:])
	c.pos += 8

	return int64(v), nil
}

// ReadFloat32 reads a little-endian IEEE 754 32-bit float.
func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()

	return math.Float32frombits(v), err
}

// ReadFloat64 reads a little-endian IEEE 754 64-bit float.
func (c *Cursor) ReadFloat64() (float64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := c.engine.Uint64(c.data[c.pos:])
	c.pos += 8

	return math.Float64frombits(v), nil
}

// ReadString reads an Unreal Engine FString.
//
// The int32 length prefix selects the encoding: a positive length is
// single-byte UTF-8 text of that many bytes including a trailing NUL; a
// negative length is UTF-16LE text of -length code units including a
// trailing NUL. A zero length is the empty string. The terminator is
// stripped from the returned string.
func (c *Cursor) ReadString() (string, error) {
	length, err := c.ReadInt32()
	if err != nil {
		return "", err
	}

	switch {
	case length == 0:
		return "", nil

	case length > 0:
		if length > maxStringLen {
			return "", fmt.Errorf("%w: length prefix %d", errs.ErrBadString, length)
		}
		raw, err := c.ReadBytes(int(length))
		if err != nil {
			return "", err
		}

		return string(bytes.TrimRight(raw, "\x00")), nil

	default: // length < 0: UTF-16LE
		n := int(-int64(length))
		if n > maxStringLen {
			return "", fmt.Errorf("%w: length prefix %d", errs.ErrBadString, length)
		}
		raw, err := c.ReadBytes(n * 2)
		if err != nil {
			return "", err
		}
		units := make([]uint16, n)
		for i := range units {
			units[i] = c.engine.Uint16(raw[i*2:])
		}
		// Strip the NUL terminator (and any padding NULs).
		for len(units) > 0 && units[len(units)-1] == 0 {
			units = units[:len(units)-1]
		}

		return string(utf16.Decode(units)), nil
	}
}

// ReadGUID reads a 16-byte Unreal Engine GUID.
func (c *Cursor) ReadGUID() (uuid.UUID, error) {
	raw, err := c.ReadBytes(16)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errs.ErrMalformed, err)
	}

	return id, nil
}

// PeekTag parses the length-prefixed type tag string at the current
// position without advancing the cursor.
func (c *Cursor) PeekTag() (Tag, error) {
	probe := *c
	name, err := probe.ReadString()
	if err != nil {
		return TagUnknown, err
	}
	if !WellFormedTagName(name) {
		return TagUnknown, fmt.Errorf("%w: %q", errs.ErrBadTag, name)
	}

	return ParseTag(name), nil
}

// PositionOf returns the absolute offset of the nth occurrence of sub at
// or after the current position. Occurrence 0 is the first match. The
// second return is false when the occurrence does not exist.
func (c *Cursor) PositionOf(sub []byte, occurrence int) (int, bool) {
	if len(sub) == 0 || occurrence < 0 {
		return 0, false
	}
	pos := c.pos
	for {
		idx := bytes.Index(c.data[pos:], sub)
		if idx < 0 {
			return 0, false
		}
		abs := pos + idx
		if occurrence == 0 {
			return abs, true
		}
		occurrence--
		pos = abs + 1
	}
}
