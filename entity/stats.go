package entity

// statProbe pairs a property name found in save buffers with the stat key
// it is reported under. Every probe owns its key.
type statProbe struct {
	prop string
	key  string
}

// characterStatProbes lists the float and double properties that carry
// character attributes. Players and tamed dinos share the same status
// component, so both assemblers scan the same table.
var characterStatProbes = []statProbe{
	{"Health", "health"},
	{"MaxHealth", "max_health"},
	{"Stamina", "stamina"},
	{"MaxStamina", "max_stamina"},
	{"Torpor", "torpor"},
	{"MaxTorpor", "max_torpor"},
	{"Oxygen", "oxygen"},
	{"MaxOxygen", "max_oxygen"},
	{"Food", "food"},
	{"MaxFood", "max_food"},
	{"Water", "water"},
	{"MaxWater", "max_water"},
	{"Weight", "weight"},
	{"MaxWeight", "max_weight"},
	{"MeleeDamage", "melee_damage"},
	{"MovementSpeed", "movement_speed"},
	{"CraftingSpeed", "crafting_speed"},
	{"Fortitude", "fortitude"},
}

// currentStatusKeys names the slots of the CurrentStatusValues array in
// the order the status component serializes them.
var currentStatusKeys = []string{
	"health", "stamina", "torpor", "oxygen",
	"food", "water", "weight", "melee_damage",
}

// decodeStats collects every present stat probe into a map. Stat probes
// are independent of each other and of the record's main anchors, so each
// probe searches from the start of the buffer rather than through the
// assembler's monotonic scan.
func decodeStats(data []byte, problems Problems) map[string]float64 {
	stats := make(map[string]float64)

	probe := newFieldScan(data, problems)
	for _, p := range characterStatProbes {
		probe.pos = 0
		if v := probe.floatOf(p.prop); v != nil {
			stats[p.key] = *v
		}
	}

	decodeStatusArray(data, stats, problems)

	if len(stats) == 0 {
		return nil
	}

	return stats
}

// decodeStatusArray folds the CurrentStatusValues float array into the
// stat map under current_ keys. Slots beyond the named ones are ignored.
func decodeStatusArray(data []byte, stats map[string]float64, problems Problems) {
	probe := newFieldScan(data, problems)
	v, ok := probe.value("CurrentStatusValues")
	if !ok {
		return
	}
	elems, ok := v.Elems()
	if !ok {
		probe.badKind("CurrentStatusValues", v, "array")

		return
	}
	for i, e := range elems {
		if i >= len(currentStatusKeys) {
			break
		}
		f, ok := e.AsFloat64()
		if !ok || f <= 0 {
			continue
		}
		stats["current_"+currentStatusKeys[i]] = f
	}
}
