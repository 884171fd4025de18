package entity

import "strings"

// structureClassPatterns identify a structure actor's class name inside
// a game-object blob. Ordered most specific first; the bare _C suffix is
// the catch-all.
var structureClassPatterns = [][]byte{
	[]byte("Structure_"),
	[]byte("StorageBox_"),
	[]byte("Bed_"),
	[]byte("Door_"),
	[]byte("Wall_"),
	[]byte("Foundation_"),
	[]byte("Ceiling_"),
	[]byte("Ramp_"),
	[]byte("Pillar_"),
	[]byte("Fence_"),
	[]byte("Gate_"),
	[]byte("_C"),
}

// structureCategories maps a class-name keyword to its coarse category.
// Keywords are matched case-insensitively against the derived structure
// type; the first hit wins.
var structureCategories = []struct {
	keyword  string
	category string
}{
	{"StorageBox", "Storage"},
	{"Vault", "Storage"},
	{"Refrigerator", "Storage"},
	{"Preserving", "Storage"},
	{"Bed", "Spawn Point"},
	{"SleepingBag", "Spawn Point"},
	{"Foundation", "Building"},
	{"Wall", "Building"},
	{"Ceiling", "Building"},
	{"Doorframe", "Building"},
	{"Door", "Building"},
	{"Window", "Building"},
	{"Ramp", "Building"},
	{"Pillar", "Building"},
	{"Stair", "Building"},
	{"Fence", "Defense"},
	{"Gate", "Defense"},
	{"Turret", "Defense"},
	{"PlantSpecies", "Defense"},
	{"Forge", "Crafting"},
	{"Smithy", "Crafting"},
	{"Fabricator", "Crafting"},
	{"ChemBench", "Crafting"},
	{"Mortar", "Crafting"},
	{"CookingPot", "Crafting"},
	{"Grill", "Crafting"},
	{"Generator", "Utility"},
	{"AirConditioner", "Utility"},
	{"Transmitter", "Utility"},
}

// CategorizeStructure classifies a derived structure type into one of
// the coarse categories, or "Other" when no keyword matches.
func CategorizeStructure(structureType string) string {
	lower := strings.ToLower(structureType)
	for _, c := range structureCategories {
		if strings.Contains(lower, strings.ToLower(c.keyword)) {
			return c.category
		}
	}

	return "Other"
}

// DecodeStructure assembles a StructureRecord from a raw game-object
// blob. The actor ID is carried in from the world-store key.
func DecodeStructure(actorID string, data []byte) *StructureRecord {
	rec := &StructureRecord{
		ActorID:  actorID,
		Problems: make(Problems),
	}

	if class, ok := findClassName(data, structureClassPatterns); ok {
		typ := structureTypeFromClass(class)
		rec.StructureType = &typ
		cat := CategorizeStructure(typ)
		rec.Category = &cat
	}

	scan := newFieldScan(data, rec.Problems)

	rec.CustomName = scan.str("CustomName")
	rec.OwnerName = scan.str("OwnerName")
	rec.TribeName = scan.str("TribeName")
	rec.TribeID = scan.int32Of("TargetingTeam")
	rec.Health = scan.floatOf("Health")
	rec.MaxHealth = scan.floatOf("MaxHealth")
	rec.IsLocked = scan.boolOf("bIsLocked")

	return rec
}

// LooksLikeStructure reports whether a game-object blob plausibly holds a
// placed structure. Creature blobs are excluded first since their class
// names also end in _C.
func LooksLikeStructure(data []byte) bool {
	if containsAny(data, [][]byte{[]byte("_Character_BP_C"), []byte("_Character_C")}) {
		return false
	}

	return containsAny(data, structureClassPatterns[:len(structureClassPatterns)-1])
}
