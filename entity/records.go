// Package entity assembles structured game-entity records from raw save
// buffers.
//
// Each assembler issues a fixed, ordered set of anchor searches against
// one buffer and folds the decoded values into a record. Every field is
// independently optional: a missing anchor leaves the field nil, and a
// field that was found but failed to decode leaves the field nil and
// records the failure in the record's Problems map. One corrupt field
// never prevents extraction of its siblings, and callers can always tell
// "absent in the save" (nil, no problem entry) apart from "could not
// parse" (nil, problem entry).
package entity

import "sort"

// Kind selects which assembler decodes a buffer.
type Kind int

const (
	KindPlayer Kind = iota
	KindTribe
	KindDino
	KindStructure
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindTribe:
		return "tribe"
	case KindDino:
		return "dino"
	case KindStructure:
		return "structure"
	default:
		return "unknown"
	}
}

// Record is implemented by every decoded entity record.
type Record interface {
	// Kind reports which entity kind the record is.
	Kind() Kind
	// ProblemFields lists the fields that were present but failed to
	// decode, sorted by name.
	ProblemFields() []string
}

// Problems maps a field name to the decode error that prevented its
// extraction. A nil entry never appears; a field absent from the map
// either decoded fine or was absent from the buffer.
type Problems map[string]error

func (p Problems) add(field string, err error) {
	if err != nil {
		p[field] = err
	}
}

// Fields returns the problem field names sorted for stable reporting.
func (p Problems) Fields() []string {
	fields := make([]string, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return fields
}

// PlayerRecord is a decoded .arkprofile.
type PlayerRecord struct {
	// EOSID comes from the profile filename, not the buffer.
	EOSID string

	PlayerName    *string
	CharacterName *string
	TribeID       *int32
	// Level is the character level. It is decoded from
	// ExtraCharacterLevel (stored as level-1) when present, otherwise
	// computed from Experience via the XP table.
	Level      *int
	Experience *float64
	// Stats holds the character attribute values that were present
	// (Health, Stamina, Weight, ...), keyed by stat name.
	Stats map[string]float64
	// Inventory lists the items recovered from the profile, if any.
	// InventoryStrategy names the extraction strategy that produced
	// them; see the inventory strategies in this package.
	Inventory         []ItemRecord
	InventoryStrategy string

	Problems Problems
}

func (*PlayerRecord) Kind() Kind { return KindPlayer }

func (r *PlayerRecord) ProblemFields() []string { return r.Problems.Fields() }

// ItemRecord is one recovered inventory item.
type ItemRecord struct {
	ItemName    string
	ItemClass   *string
	Quantity    int
	Durability  *float64
	Quality     *int
	CustomName  *string
	IsBlueprint bool
	IsEngram    bool
}

// TribeRecord is a decoded .arktribe.
type TribeRecord struct {
	// TribeID comes from the tribe filename, not the buffer.
	TribeID int32

	TribeName         *string
	OwnerPlayerDataID *uint32
	Members           []TribeMember
	TribeLog          []string
	TamedDinoCount    *int32

	Problems Problems
}

func (*TribeRecord) Kind() Kind { return KindTribe }

func (r *TribeRecord) ProblemFields() []string { return r.Problems.Fields() }

// TribeMember pairs a member name with its player data ID. The two come
// from parallel arrays in the tribe file; a member past the end of the ID
// array keeps a nil ID.
type TribeMember struct {
	Name         string
	PlayerDataID *uint32
}

// DinoRecord is a tamed creature decoded from a world-store game object.
type DinoRecord struct {
	// ActorID is the world-store key the blob came from.
	ActorID string

	// SpeciesName is derived from the actor's class name (for example
	// "Raptor_Character_BP_C" becomes "Raptor").
	SpeciesName *string
	TamedName   *string
	// BaseLevel is the wild level; Level adds the levels gained after
	// taming when both are present.
	BaseLevel  *int32
	Level      *int32
	Experience *float64
	OwnerName  *string
	TribeID    *int32
	IsFemale   *bool
	IsBaby     *bool
	Stats      map[string]float64

	Problems Problems
}

func (*DinoRecord) Kind() Kind { return KindDino }

func (r *DinoRecord) ProblemFields() []string { return r.Problems.Fields() }

// StructureRecord is a placed structure decoded from a world-store game
// object.
type StructureRecord struct {
	ActorID string

	// StructureType is derived from the actor's class name; Category is
	// its coarse classification (Storage, Building, Defense, ...).
	StructureType *string
	Category      *string
	CustomName    *string
	OwnerName     *string
	TribeName     *string
	TribeID       *int32
	Health        *float64
	MaxHealth     *float64
	IsLocked      *bool

	Problems Problems
}

func (*StructureRecord) Kind() Kind { return KindStructure }

func (r *StructureRecord) ProblemFields() []string { return r.Problems.Fields() }
