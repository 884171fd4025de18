package entity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/internal/proptest"
)

func TestDecodeTribeBasic(t *testing.T) {
	data := proptest.New().
		Str("TribeName", "The Wanderers").
		UInt32("OwnerPlayerDataId", 9001).
		ArrayStr("MembersPlayerName", []string{"Alice", "Bob"}).
		ArrayUInt32("MembersPlayerDataID", []uint32{9001, 9002}).
		ArrayStr("TribeLog", []string{
			"Day 12: Alice joined the tribe",
			"Day 14: Raptor was tamed",
		}).
		Int32("TamedDinoCount", 5).
		Bytes()

	rec := DecodeTribe(77, data)

	require.Equal(t, int32(77), rec.TribeID)
	require.NotNil(t, rec.TribeName)
	require.Equal(t, "The Wanderers", *rec.TribeName)
	require.NotNil(t, rec.OwnerPlayerDataID)
	require.Equal(t, uint32(9001), *rec.OwnerPlayerDataID)

	require.Len(t, rec.Members, 2)
	require.Equal(t, "Alice", rec.Members[0].Name)
	require.NotNil(t, rec.Members[0].PlayerDataID)
	require.Equal(t, uint32(9001), *rec.Members[0].PlayerDataID)
	require.Equal(t, "Bob", rec.Members[1].Name)
	require.NotNil(t, rec.Members[1].PlayerDataID)
	require.Equal(t, uint32(9002), *rec.Members[1].PlayerDataID)

	require.Len(t, rec.TribeLog, 2)
	require.NotNil(t, rec.TamedDinoCount)
	require.Equal(t, int32(5), *rec.TamedDinoCount)
	require.Empty(t, rec.ProblemFields())
}

// A member name without a matching ID entry keeps a nil ID rather than
// borrowing a neighbour's.
func TestDecodeTribeMemberArraysUneven(t *testing.T) {
	data := proptest.New().
		Str("TribeName", "Shorthanded").
		ArrayStr("MembersPlayerName", []string{"Alice", "Bob", "Carol"}).
		ArrayUInt32("MembersPlayerDataID", []uint32{9001}).
		Bytes()

	rec := DecodeTribe(78, data)

	require.Len(t, rec.Members, 3)
	require.NotNil(t, rec.Members[0].PlayerDataID)
	require.Nil(t, rec.Members[1].PlayerDataID)
	require.Nil(t, rec.Members[2].PlayerDataID)
}

// A malformed member-ID array must not block the fields scanned after it.
func TestDecodeTribeMalformedArrayIsolated(t *testing.T) {
	data := proptest.New().
		Str("TribeName", "Corrupted").
		ArrayStr("MembersPlayerName", []string{"Alice"}).
		ArrayMismatched("MembersPlayerDataID", []uint32{9001}, 3).
		Int32("TamedDinoCount", 2).
		Bytes()

	rec := DecodeTribe(79, data)

	require.NotNil(t, rec.TribeName)
	require.Len(t, rec.Members, 1)
	require.Nil(t, rec.Members[0].PlayerDataID)
	require.ErrorIs(t, rec.Problems["MembersPlayerDataID"], errs.ErrMalformed)

	require.NotNil(t, rec.TamedDinoCount)
	require.Equal(t, int32(2), *rec.TamedDinoCount)
}

func TestDecodeTribeAbsentFields(t *testing.T) {
	rec := DecodeTribe(80, proptest.New().Str("Noise", "x").Bytes())

	require.Equal(t, int32(80), rec.TribeID)
	require.Nil(t, rec.TribeName)
	require.Nil(t, rec.OwnerPlayerDataID)
	require.Nil(t, rec.Members)
	require.Nil(t, rec.TribeLog)
	require.Nil(t, rec.TamedDinoCount)
	require.Empty(t, rec.ProblemFields())
}
