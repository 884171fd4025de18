// Package levels maps experience points to character levels.
//
// ARK stores a character's level as ExtraCharacterLevel (level minus one)
// in most profile serializations, but older and partially corrupted
// profiles only carry experience points. This package bundles the default
// ASA XP threshold table so callers can recover a level from experience
// alone, and accepts a custom table for servers running modified
// progression.
package levels

import (
	"sort"
	"sync"
)

// Table holds the minimum experience required for each level. The table is
// one-indexed by convention: Table[0] is the XP floor of level 1. Tables
// are treated as immutable once constructed; Default returns a shared
// instance that must never be modified.
type Table []float64

// defaultTable is built once per process and shared read-only across all
// concurrent decodes.
var defaultTable = sync.OnceValue(func() Table {
	t := make(Table, len(defaultThresholds))
	copy(t, defaultThresholds)

	return t
})

// Default returns the bundled ASA progression table for levels 1-180.
func Default() Table {
	return defaultTable()
}

// MaxLevel returns the highest level the table can report.
func (t Table) MaxLevel() int {
	return len(t)
}

// LevelForXP returns the level reached at the given experience, clamped to
// [1, MaxLevel]. An empty table reports level 0, meaning "no answer";
// callers treat that as absence rather than a real level.
func (t Table) LevelForXP(xp float64) int {
	if len(t) == 0 {
		return 0
	}

	// Rightmost threshold not exceeding xp. SearchFloat64s returns the
	// insertion index, which for a one-indexed table is the level itself.
	idx := sort.SearchFloat64s(t, xp)
	if idx < len(t) && t[idx] == xp {
		idx++ // exact threshold hit counts as having reached the level
	}

	return max(1, min(idx, len(t)))
}
