package property

import (
	"testing"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/internal/proptest"
	"github.com/stretchr/testify/require"
)

func TestCursorReadString_UTF8(t *testing.T) {
	data := proptest.New().LPString("Rex").Bytes()
	cur := NewCursor(data)

	s, err := cur.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Rex", s, "terminator must be stripped")
	require.Equal(t, len(data), cur.Pos())
	require.Equal(t, 0, cur.Remaining())
}

func TestCursorReadString_UTF16(t *testing.T) {
	data := proptest.New().LPStringUTF16("Raptor").Bytes()
	cur := NewCursor(data)

	s, err := cur.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Raptor", s)
	require.Equal(t, len(data), cur.Pos())
}

func TestCursorReadString_UTF16NonASCII(t *testing.T) {
	data := proptest.New().LPStringUTF16("Ætt Jötunn").Bytes()
	cur := NewCursor(data)

	s, err := cur.ReadString()
	require.NoError(t, err)
	require.Equal(t, "Ætt Jötunn", s)
}

func TestCursorReadString_Empty(t *testing.T) {
	cur := NewCursor([]byte{0, 0, 0, 0})

	s, err := cur.ReadString()
	require.NoError(t, err)
	require.Empty(t, s)
	require.Equal(t, 4, cur.Pos())
}

func TestCursorReadString_UnreasonableLength(t *testing.T) {
	// Length prefix way past maxStringLen; must fail instead of
	// allocating.
	cur := NewCursor([]byte{0xff, 0xff, 0xff, 0x7f, 'x'})

	_, err := cur.ReadString()
	require.ErrorIs(t, err, errs.ErrBadString)
}

func TestCursorScalars(t *testing.T) {
	buf := []byte{
		0x2a, 0x00, 0x00, 0x00, // uint32 42
		0xd6, 0xff, 0xff, 0xff, // int32 -42
		0x01, 0x02, // uint16 0x0201
		0x07, // byte
		0x01, // bool true
	}
	cur := NewCursor(buf)

	u32, err := cur.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(42), u32)

	i32, err := cur.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-42), i32)

	u16, err := cur.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), u16)

	b, err := cur.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(7), b)

	v, err := cur.ReadBool()
	require.NoError(t, err)
	require.True(t, v)

	require.Equal(t, 0, cur.Remaining())
}

func TestCursorFloats(t *testing.T) {
	data := proptest.New().
		Raw([]byte{0x00, 0x00, 0x28, 0x42}). // float32 42.0
		Bytes()
	cur := NewCursor(data)

	f, err := cur.ReadFloat32()
	require.NoError(t, err)
	require.InDelta(t, 42.0, f, 1e-6)
}

// Bounds safety: however the buffer is truncated, every read either
// succeeds within bounds or fails with ErrTruncated. Nothing panics and
// nothing fabricates data.
func TestCursorTruncationAtEveryOffset(t *testing.T) {
	full := proptest.New().
		LPString("PlayerName").
		LPStringUTF16("Raptor").
		Raw([]byte{1, 2, 3, 4, 5, 6, 7, 8}).
		Bytes()

	for cut := range len(full) {
		cur := NewCursor(full[:cut])

		if _, err := cur.ReadString(); err != nil {
			require.ErrorIs(t, err, errs.ErrTruncated, "cut=%d", cut)
			continue
		}
		if _, err := cur.ReadString(); err != nil {
			require.ErrorIs(t, err, errs.ErrTruncated, "cut=%d", cut)
			continue
		}
		if _, err := cur.ReadInt64(); err != nil {
			require.ErrorIs(t, err, errs.ErrTruncated, "cut=%d", cut)
		}
	}
}

func TestCursorSeekSkip(t *testing.T) {
	cur := NewCursor(make([]byte, 16))

	require.NoError(t, cur.Seek(8))
	require.Equal(t, 8, cur.Pos())
	require.NoError(t, cur.Skip(8))
	require.Equal(t, 0, cur.Remaining())

	require.ErrorIs(t, cur.Skip(1), errs.ErrTruncated)
	require.ErrorIs(t, cur.Seek(17), errs.ErrTruncated)
	require.ErrorIs(t, cur.Seek(-1), errs.ErrTruncated)
	require.ErrorIs(t, cur.Skip(-1), errs.ErrMalformed)
}

func TestCursorSpeculativeCopy(t *testing.T) {
	data := proptest.New().LPString("TribeName").Bytes()
	cur := NewCursor(data)

	// A copied cursor advances independently of the original.
	probe := cur
	_, err := probe.ReadString()
	require.NoError(t, err)
	require.Equal(t, 0, cur.Pos())
	require.Equal(t, len(data), probe.Pos())
}

func TestCursorPositionOf(t *testing.T) {
	data := []byte("xxMemberNameyyMemberNamezzMemberName")
	cur := NewCursor(data)

	first, ok := cur.PositionOf([]byte("MemberName"), 0)
	require.True(t, ok)
	require.Equal(t, 2, first)

	second, ok := cur.PositionOf([]byte("MemberName"), 1)
	require.True(t, ok)
	require.Equal(t, 14, second)

	third, ok := cur.PositionOf([]byte("MemberName"), 2)
	require.True(t, ok)
	require.Equal(t, 26, third)

	_, ok = cur.PositionOf([]byte("MemberName"), 3)
	require.False(t, ok)
}

func TestCursorPeekTag(t *testing.T) {
	data := proptest.New().LPString("UInt32Property").Bytes()
	cur := NewCursor(data)

	tag, err := cur.PeekTag()
	require.NoError(t, err)
	require.Equal(t, TagUInt32, tag)
	require.Equal(t, 0, cur.Pos(), "peek must not advance")

	cur = NewCursor(proptest.New().LPString("not a tag").Bytes())
	_, err = cur.PeekTag()
	require.ErrorIs(t, err, errs.ErrBadTag)
}

func TestCursorReadGUID(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	cur := NewCursor(raw)

	id, err := cur.ReadGUID()
	require.NoError(t, err)
	require.Equal(t, raw, id[:])
	require.Equal(t, 16, cur.Pos())

	short := NewCursor(raw[:10])
	_, err = short.ReadGUID()
	require.ErrorIs(t, err, errs.ErrTruncated)
}
