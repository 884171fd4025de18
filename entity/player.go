package entity

import "github.com/BoldPhoenix/ark-asa-parser/levels"

// experienceAnchors is the fallback chain for the experience value; the
// property name changed across serializer versions.
var experienceAnchors = []string{
	"CharacterStatusComponent_ExperiencePoints",
	"ExperiencePoints",
	"Experience",
	"XP",
}

// DecodePlayer assembles a PlayerRecord from a raw .arkprofile buffer.
// The EOS ID is carried in from the filename. A nil level table falls
// back to the stock progression curve.
func DecodePlayer(eosID string, data []byte, table levels.Table) *PlayerRecord {
	if table == nil {
		table = levels.Default()
	}

	rec := &PlayerRecord{
		EOSID:    eosID,
		Problems: make(Problems),
	}

	scan := newFieldScan(data, rec.Problems)

	rec.PlayerName = scan.str("PlayerName")
	rec.CharacterName = scan.str("PlayerCharacterName")
	rec.TribeID = scan.int32Of("TribeID")

	// ExtraCharacterLevel stores level-1. When it is absent the level is
	// recovered from the experience value via the progression table.
	if extra := scan.uint16Of("ExtraCharacterLevel"); extra != nil {
		lvl := int(*extra) + 1
		rec.Level = &lvl
	}

	rec.Experience = scan.floatAny(experienceAnchors...)

	if rec.Level == nil && rec.Experience != nil {
		if lvl := table.LevelForXP(*rec.Experience); lvl > 0 {
			rec.Level = &lvl
		}
	}

	rec.Stats = decodeStats(data, rec.Problems)
	rec.Inventory, rec.InventoryStrategy = decodeInventory(data, rec.Problems)

	return rec
}
