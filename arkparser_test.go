package arkparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BoldPhoenix/ark-asa-parser/entity"
	"github.com/BoldPhoenix/ark-asa-parser/internal/proptest"
)

func TestDecodeEntityDispatch(t *testing.T) {
	profile := proptest.New().
		Str("PlayerName", "Alice").
		Int32("TribeID", 42).
		Bytes()

	rec := DecodeEntity(entity.KindPlayer, "eos-1", profile)
	require.Equal(t, entity.KindPlayer, rec.Kind())

	player, ok := rec.(*entity.PlayerRecord)
	require.True(t, ok)
	require.NotNil(t, player.PlayerName)
	require.Equal(t, "Alice", *player.PlayerName)

	tribeData := proptest.New().Str("TribeName", "The Wanderers").Bytes()
	rec = DecodeEntity(entity.KindTribe, "42", tribeData)
	tribe, ok := rec.(*entity.TribeRecord)
	require.True(t, ok)
	require.Equal(t, int32(42), tribe.TribeID)

	require.Nil(t, DecodeEntity(entity.Kind(99), "x", nil))
}

func TestParseTribeID(t *testing.T) {
	require.Equal(t, int32(42), parseTribeID("42"))
	require.Equal(t, int32(0), parseTribeID("not-a-number"))
	require.Equal(t, int32(0), parseTribeID(""))
}
