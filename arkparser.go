// Package arkparser extracts game-entity records from ARK: Survival
// Ascended save files.
//
// ASA persists its state in an undocumented UE5 binary serialization:
// player profiles (.arkprofile) and tribes (.arktribe) are raw property
// buffers, and the world save (.ark) is a SQLite database of serialized
// game-object blobs. Rather than fully parsing the container format,
// this module recovers records by anchor scanning: it searches a buffer
// for known property names, validates the record framing around each
// match, and decodes just the values it needs. Unknown or corrupt
// regions are tolerated field by field.
//
// # Package layout
//
//   - property: the core engine (cursor, tag registry, scanner, scalar /
//     array / struct decoders)
//   - entity: assemblers turning buffers into Player/Tribe/Dino/Structure
//     records
//   - levels: XP-to-level progression tables
//   - bytesource: file, mmap, and compressed byte sources
//   - store: read-only world-save SQLite access
//   - save: directory orchestration and cluster discovery
//   - watch: polling change detection over save directories
//
// # Basic usage
//
// Decoding one profile:
//
//	src, _ := bytesource.OpenAuto("eos-id.arkprofile")
//	defer src.Close()
//	player := arkparser.DecodePlayer("eos-id", src.Bytes())
//	if player.PlayerName != nil {
//	    fmt.Println(*player.PlayerName)
//	}
//
// Batch extraction over a server's save directory:
//
//	r, _ := save.NewReader("/saves/SavedArks/TheIsland_WP")
//	players, _ := r.AllPlayers(ctx)
//	dinos, _ := r.Dinos(ctx)
package arkparser

import (
	"github.com/BoldPhoenix/ark-asa-parser/entity"
	"github.com/BoldPhoenix/ark-asa-parser/levels"
)

// DecodePlayer extracts a player record from a raw .arkprofile buffer
// using the default XP progression table.
func DecodePlayer(eosID string, data []byte) *entity.PlayerRecord {
	return entity.DecodePlayer(eosID, data, nil)
}

// DecodePlayerWithTable extracts a player record using a custom XP
// progression table, for servers running modified level curves.
func DecodePlayerWithTable(eosID string, data []byte, table levels.Table) *entity.PlayerRecord {
	return entity.DecodePlayer(eosID, data, table)
}

// DecodeTribe extracts a tribe record from a raw .arktribe buffer.
func DecodeTribe(tribeID int32, data []byte) *entity.TribeRecord {
	return entity.DecodeTribe(tribeID, data)
}

// DecodeDino extracts a tamed-creature record from a world-store
// game-object blob.
func DecodeDino(actorID string, data []byte) *entity.DinoRecord {
	return entity.DecodeDino(actorID, data)
}

// DecodeStructure extracts a placed-structure record from a world-store
// game-object blob.
func DecodeStructure(actorID string, data []byte) *entity.StructureRecord {
	return entity.DecodeStructure(actorID, data)
}

// DecodeEntity dispatches to the assembler for the given kind. The id is
// the EOS ID for players, the decimal tribe ID for tribes, and the actor
// key for dinos and structures.
func DecodeEntity(kind entity.Kind, id string, data []byte) entity.Record {
	switch kind {
	case entity.KindPlayer:
		return entity.DecodePlayer(id, data, nil)
	case entity.KindTribe:
		return entity.DecodeTribe(parseTribeID(id), data)
	case entity.KindDino:
		return entity.DecodeDino(id, data)
	case entity.KindStructure:
		return entity.DecodeStructure(id, data)
	default:
		return nil
	}
}

// parseTribeID reads a decimal tribe ID, tolerating junk by returning 0.
func parseTribeID(id string) int32 {
	var n int32
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int32(r-'0')
	}

	return n
}
