package entity

// dinoClassPatterns are the suffixes that identify a creature actor's
// class name inside a game-object blob.
var dinoClassPatterns = [][]byte{
	[]byte("_Character_BP_C"),
	[]byte("_Character_C"),
	[]byte("Dino_Character_BP_C"),
	[]byte("_Dino_Character_C"),
}

// dinoNameAnchors is the fallback chain for a creature's custom name.
var dinoNameAnchors = []string{"TamedName", "CustomTag", "DinoNameTag"}

// dinoOwnerAnchors is the fallback chain for the taming player's name.
var dinoOwnerAnchors = []string{"TamerString", "OwnerName"}

// DecodeDino assembles a DinoRecord from a raw game-object blob. The
// actor ID is carried in from the world-store key.
func DecodeDino(actorID string, data []byte) *DinoRecord {
	rec := &DinoRecord{
		ActorID:  actorID,
		Problems: make(Problems),
	}

	if class, ok := findClassName(data, dinoClassPatterns); ok {
		species := speciesFromClass(class)
		rec.SpeciesName = &species
	}

	scan := newFieldScan(data, rec.Problems)

	rec.TamedName = scan.strAny(dinoNameAnchors...)
	rec.BaseLevel = scan.int32Of("BaseCharacterLevel")

	// Levels gained after taming are stored separately from the wild
	// level. The effective level is the sum when both are present.
	if extra := scan.uint16Of("ExtraCharacterLevel"); extra != nil {
		lvl := int32(*extra)
		if rec.BaseLevel != nil {
			lvl += *rec.BaseLevel
		}
		rec.Level = &lvl
	} else if rec.BaseLevel != nil {
		lvl := *rec.BaseLevel
		rec.Level = &lvl
	}

	rec.Experience = scan.floatAny(experienceAnchors...)
	rec.OwnerName = scan.strAny(dinoOwnerAnchors...)
	rec.TribeID = scan.int32Of("TargetingTeam")
	rec.IsFemale = scan.boolOf("bIsFemale")
	rec.IsBaby = scan.boolOf("bIsBaby")

	rec.Stats = decodeStats(data, rec.Problems)

	return rec
}

// LooksLikeDino reports whether a game-object blob plausibly holds a
// tamed creature. It is a cheap prefilter applied before full decoding.
func LooksLikeDino(data []byte) bool {
	if !containsAny(data, [][]byte{[]byte("Character"), []byte("Dino")}) {
		return false
	}

	return containsAny(data, [][]byte{
		[]byte("Tamed"), []byte("Owner"), []byte("Tribe"),
	})
}
