package property

import (
	"testing"

	"github.com/BoldPhoenix/ark-asa-parser/internal/proptest"
	"github.com/stretchr/testify/require"
)

func TestFindProperty_Basic(t *testing.T) {
	data := proptest.New().
		Raw([]byte("garbage before the first record")).
		Str("PlayerName", "Alice").
		UInt32("TribeID", 42).
		Bytes()

	hdr, ok := FindProperty(data, "PlayerName", 0, 0)
	require.True(t, ok)
	require.Equal(t, "PlayerName", hdr.Name)
	require.Equal(t, "StrProperty", hdr.TagName)
	require.Equal(t, TagString, hdr.Tag)
	require.Equal(t, int64(4+len("Alice")+1), hdr.Size)

	v, _, err := DecodeRecord(data, hdr)
	require.NoError(t, err)
	s, ok := v.Str()
	require.True(t, ok)
	require.Equal(t, "Alice", s)

	hdr, ok = FindProperty(data, "TribeID", 0, 0)
	require.True(t, ok)
	require.Equal(t, TagUInt32, hdr.Tag)
}

func TestFindProperty_Absent(t *testing.T) {
	data := proptest.New().Str("PlayerName", "Alice").Bytes()

	_, ok := FindProperty(data, "CharacterName", 0, 0)
	require.False(t, ok, "absence is ok=false, not an error")
}

func TestFindProperty_OccurrenceIndexing(t *testing.T) {
	data := proptest.New().
		Str("MemberName", "Bob").
		Raw([]byte{0xde, 0xad}).
		Str("MemberName", "Carol").
		Str("MemberName", "Dave").
		Bytes()

	var offsets []int
	for occ := range 3 {
		hdr, ok := FindProperty(data, "MemberName", occ, 0)
		require.True(t, ok, "occurrence %d", occ)
		offsets = append(offsets, hdr.NameOffset)
	}
	require.Less(t, offsets[0], offsets[1])
	require.Less(t, offsets[1], offsets[2])

	_, ok := FindProperty(data, "MemberName", 3, 0)
	require.False(t, ok, "fourth occurrence must not exist")
}

func TestFindProperty_FromOffset(t *testing.T) {
	data := proptest.New().
		Str("MemberName", "Bob").
		Str("MemberName", "Carol").
		Bytes()

	first, ok := FindProperty(data, "MemberName", 0, 0)
	require.True(t, ok)

	// Resuming past the first match finds the second as occurrence 0.
	second, ok := FindProperty(data, "MemberName", 0, first.NameOffset+1)
	require.True(t, ok)
	require.Greater(t, second.NameOffset, first.NameOffset)

	carol, _, err := DecodeRecord(data, second)
	require.NoError(t, err)
	s, _ := carol.Str()
	require.Equal(t, "Carol", s)
}

func TestFindProperty_RejectsCoincidentalMatch(t *testing.T) {
	// The name bytes appear twice: once loose inside unrelated data with
	// no length prefix or tag string, once as a real record. The scanner
	// must skip the decoy.
	data := proptest.New().
		Raw([]byte("noise TribeID noise")).
		UInt32("TribeID", 7).
		Bytes()

	hdr, ok := FindProperty(data, "TribeID", 0, 0)
	require.True(t, ok)

	v, _, err := DecodeRecord(data, hdr)
	require.NoError(t, err)
	u, ok := v.UInt32()
	require.True(t, ok)
	require.Equal(t, uint32(7), u)

	// And there is exactly one accepted anchor.
	require.Equal(t, 1, CountOccurrences(data, "TribeID", 0))
}

func TestFindProperty_RejectsNameInsideStringValue(t *testing.T) {
	// A string value containing a property name must not be mistaken for
	// a record: the bytes after it do not parse as a tag string.
	data := proptest.New().
		Str("Note", "my TribeID is secret").
		UInt32("TribeID", 9).
		Bytes()

	hdr, ok := FindProperty(data, "TribeID", 0, 0)
	require.True(t, ok)
	v, _, err := DecodeRecord(data, hdr)
	require.NoError(t, err)
	u, _ := v.UInt32()
	require.Equal(t, uint32(9), u)
}

func TestFindProperty_UnknownButWellFormedTag(t *testing.T) {
	data := proptest.New().
		Unknown("Flags", "TextProperty", []byte{1, 2, 3}).
		Bytes()

	hdr, ok := FindProperty(data, "Flags", 0, 0)
	require.True(t, ok)
	require.Equal(t, TagUnknown, hdr.Tag)
	require.Equal(t, "TextProperty", hdr.TagName)
	require.Equal(t, int64(3), hdr.Size)
}

func TestFindProperty_TruncatedHeader(t *testing.T) {
	full := proptest.New().Str("PlayerName", "Alice").Bytes()

	// Cut inside the declared-size field: the candidate cannot complete
	// its header, so the scan reports absence rather than erroring.
	cut := full[:len(full)-int(4+len("Alice")+1)-5]
	_, ok := FindProperty(cut, "PlayerName", 0, 0)
	require.False(t, ok)
}
