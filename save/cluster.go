package save

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BoldPhoenix/ark-asa-parser/property"
)

// TransferKind classifies a cluster transfer file.
type TransferKind int

const (
	TransferUnknown TransferKind = iota
	TransferCharacter
	TransferItem
	TransferDino
)

func (k TransferKind) String() string {
	switch k {
	case TransferCharacter:
		return "character"
	case TransferItem:
		return "item"
	case TransferDino:
		return "dino"
	default:
		return "unknown"
	}
}

// steamIDLen is the digit count of a 64-bit Steam ID as it appears in
// transfer filenames.
const steamIDLen = 17

// ClusterTransfer is one file in a cluster's shared ClusterObjects
// folder, holding a character, item, or creature in transit between
// servers.
type ClusterTransfer struct {
	FileName string
	Path     string
	Size     int64
	Kind     TransferKind
	// SteamID is parsed from the filename when it leads with a 17-digit
	// run.
	SteamID string
	// CharacterName is a best-effort probe of character transfers.
	CharacterName *string
}

// ReadClusterFile inspects one transfer file.
func ReadClusterFile(path string) (*ClusterTransfer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cluster file %s: %w", path, err)
	}

	t := &ClusterTransfer{
		FileName: filepath.Base(path),
		Path:     path,
		Size:     info.Size(),
		Kind:     transferKind(path),
		SteamID:  steamIDFromName(path),
	}

	if data, err := os.ReadFile(path); err == nil {
		if hdr, ok := property.FindProperty(data, "CharacterName", 0, 0); ok {
			if v, _, err := property.DecodeRecord(data, hdr); err == nil {
				if name, ok := v.Str(); ok && name != "" {
					t.CharacterName = &name
				}
			}
		}
	}

	return t, nil
}

func transferKind(path string) TransferKind {
	suffix := strings.ToLower(filepath.Ext(path))
	switch {
	case strings.Contains(suffix, "character"):
		return TransferCharacter
	case strings.Contains(suffix, "item"):
		return TransferItem
	case strings.Contains(suffix, "dino"), strings.Contains(suffix, "creature"):
		return TransferDino
	default:
		return TransferUnknown
	}
}

// steamIDFromName extracts a leading 17-digit Steam ID from a transfer
// filename like 76561198000000001_1699999999.arkcharactersetting.
func steamIDFromName(path string) string {
	first, _, _ := strings.Cut(stem(path), "_")
	if len(first) != steamIDLen {
		return ""
	}
	for _, r := range first {
		if r < '0' || r > '9' {
			return ""
		}
	}

	return first
}

// ScanCluster reads every transfer in a ClusterObjects folder. The path
// may point at the folder itself or at its parent SavedArks directory.
// Unreadable files are skipped.
func ScanCluster(path string) ([]*ClusterTransfer, error) {
	dir := path
	if filepath.Base(dir) != "ClusterObjects" {
		dir = filepath.Join(dir, "ClusterObjects")
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan cluster %s: %w", dir, err)
	}

	var transfers []*ClusterTransfer
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		t, err := ReadClusterFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		transfers = append(transfers, t)
	}

	return transfers, nil
}

// PlayerTransfers filters a cluster scan to one player's Steam ID.
func PlayerTransfers(transfers []*ClusterTransfer, steamID string) []*ClusterTransfer {
	var out []*ClusterTransfer
	for _, t := range transfers {
		if t.SteamID == steamID {
			out = append(out, t)
		}
	}

	return out
}
