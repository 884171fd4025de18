package entity

import (
	"bytes"
	"strings"

	"github.com/BoldPhoenix/ark-asa-parser/property"
)

// classScanBack bounds how far behind a class-name pattern the length
// prefix of its enclosing string is searched for.
const classScanBack = 200

// findClassName locates the first of the given byte patterns in the
// buffer and walks backward from the match looking for the length prefix
// of a string that contains the pattern. Actor class names are stored as
// plain length-prefixed strings, so the prefix sits at an unknown offset
// before the pattern bytes.
func findClassName(data []byte, patterns [][]byte) (string, bool) {
	for _, pattern := range patterns {
		pos := bytes.Index(data, pattern)
		if pos < 0 {
			continue
		}

		start := pos - classScanBack
		if start < 0 {
			start = 0
		}
		// The closest the length prefix can sit is 4 bytes before the
		// pattern, when the pattern opens the string.
		cur := property.NewCursor(data)
		for i := pos - 4; i >= start; i-- {
			if err := cur.Seek(i); err != nil {
				continue
			}
			name, err := cur.ReadString()
			if err != nil || name == "" {
				continue
			}
			if strings.Contains(name, string(pattern)) {
				return name, true
			}
		}
	}

	return "", false
}

// containsAny reports whether any of the byte patterns occurs in data.
func containsAny(data []byte, patterns [][]byte) bool {
	for _, p := range patterns {
		if bytes.Contains(data, p) {
			return true
		}
	}

	return false
}

// speciesFromClass turns an actor class name into a readable species
// name, for example "Raptor_Character_BP_C" into "Raptor".
func speciesFromClass(className string) string {
	clean := strings.ReplaceAll(className, "_Character_BP_C", "")
	clean = strings.ReplaceAll(clean, "_Character_C", "")

	parts := strings.Split(clean, "_")
	if len(parts) > 0 {
		switch parts[0] {
		case "Dino", "Character", "BP":
			parts = parts[1:]
		}
	}
	if len(parts) == 0 {
		return className
	}

	return strings.Join(parts, " ")
}

// structureTypeFromClass turns a structure class name into a readable
// type, for example "StorageBox_Large_C" into "StorageBox Large".
func structureTypeFromClass(className string) string {
	clean := strings.ReplaceAll(className, "_C", "")
	clean = strings.ReplaceAll(clean, "_BP", "")

	var parts []string
	for _, p := range strings.Split(clean, "_") {
		if p == "" || p == "Structure" || p == "PrimalItem" {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return className
	}

	return strings.Join(parts, " ")
}
