package entity

import (
	"github.com/BoldPhoenix/ark-asa-parser/property"
)

// Inventory decode strategy names, recorded on the owning record so
// callers can tell a fully parsed item list from a heuristic one.
const (
	InventoryArrayWalk   = "array-walk"
	InventoryAnchorPairs = "anchor-pairs"
)

// inventoryArrayNames lists the property names an item container array is
// stored under, in the order they are tried.
var inventoryArrayNames = []string{
	"InventoryItems",
	"MyInventoryComponent",
	"ArkInventoryData",
}

// decodeInventory recovers the item list from a profile buffer. The
// struct-array walk is tried first; when no container array decodes, the
// anchor-pairing heuristic matches item names with quantities instead.
// A container array that is present but fails to decode is recorded in
// problems under its property name, so an empty result stays
// distinguishable from a parse failure. Returns the items and the name
// of the strategy that produced them.
func decodeInventory(data []byte, problems Problems) ([]ItemRecord, string) {
	for _, name := range inventoryArrayNames {
		items, err := decodeItemArray(data, name)
		if err != nil {
			problems[name] = err

			continue
		}
		if len(items) > 0 {
			return items, InventoryArrayWalk
		}
	}

	if items := pairItemAnchors(data); len(items) > 0 {
		return items, InventoryAnchorPairs
	}

	return nil, ""
}

// decodeItemArray decodes one named ArrayProperty of item structs. An
// absent or non-array anchor returns nil items and nil error; a present
// array that fails to decode returns the decode error so the caller can
// report it while falling through to the next strategy.
func decodeItemArray(data []byte, name string) ([]ItemRecord, error) {
	hdr, ok := property.FindProperty(data, name, 0, 0)
	if !ok || hdr.Tag != property.TagArray {
		return nil, nil
	}
	v, _, err := property.DecodeRecord(data, hdr)
	if err != nil {
		return nil, err
	}
	elems, ok := v.Elems()
	if !ok {
		return nil, nil
	}

	items := make([]ItemRecord, 0, len(elems))
	for _, e := range elems {
		sv, ok := e.Struct()
		if !ok {
			continue
		}
		if item, ok := itemFromStruct(sv); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}

	return items, nil
}

// itemFromStruct maps the fields of one decoded item struct onto an
// ItemRecord. Items with no recoverable name are dropped.
func itemFromStruct(sv *property.StructValue) (ItemRecord, bool) {
	item := ItemRecord{Quantity: 1}

	for _, f := range sv.Fields {
		switch f.Name {
		case "ItemName", "ItemArchetype", "ItemClass":
			if s, ok := f.Value.Str(); ok {
				if item.ItemName == "" {
					item.ItemName = s
				}
				class := s
				item.ItemClass = &class
			}
		case "CustomItemName":
			if s, ok := f.Value.Str(); ok {
				custom := s
				item.CustomName = &custom
				if item.ItemName == "" {
					item.ItemName = s
				}
			}
		case "ItemQuantity":
			if n, ok := f.Value.AsInt(); ok && n > 0 {
				item.Quantity = int(n)
			}
		case "ItemDurability", "Durability":
			if d, ok := f.Value.AsFloat64(); ok {
				v := d
				item.Durability = &v
			}
		case "ItemRating", "ItemQualityIndex":
			if q, ok := f.Value.AsInt(); ok {
				v := int(q)
				item.Quality = &v
			}
		case "bIsBlueprint":
			if b, ok := f.Value.Bool(); ok {
				item.IsBlueprint = b
			}
		case "bIsEngram":
			if b, ok := f.Value.Bool(); ok {
				item.IsEngram = b
			}
		}
	}

	return item, item.ItemName != ""
}

// pairItemAnchors is the fallback: collect every ItemName (or
// CustomItemName) string and every ItemQuantity integer in buffer order
// and zip them positionally. Only the overlapping prefix is kept.
func pairItemAnchors(data []byte) []ItemRecord {
	names := allStringValues(data, "CustomItemName")
	if len(names) == 0 {
		names = allStringValues(data, "ItemName")
	}
	quantities := allIntValues(data, "ItemQuantity")

	n := len(names)
	if len(quantities) < n {
		n = len(quantities)
	}

	items := make([]ItemRecord, 0, n)
	for i := 0; i < n; i++ {
		if names[i] == "" {
			continue
		}
		items = append(items, ItemRecord{
			ItemName: names[i],
			Quantity: quantities[i],
		})
	}
	if len(items) == 0 {
		return nil
	}

	return items
}

// allStringValues decodes every occurrence of a string property in buffer
// order. Occurrences that fail to decode are skipped.
func allStringValues(data []byte, name string) []string {
	var out []string

	from := 0
	for {
		hdr, ok := property.FindProperty(data, name, 0, from)
		if !ok {
			break
		}
		from = hdr.NameOffset + 1

		v, _, err := property.DecodeRecord(data, hdr)
		if err != nil {
			continue
		}
		if s, ok := v.Str(); ok {
			out = append(out, s)
		}
	}

	return out
}

// allIntValues decodes every occurrence of an integer property in buffer
// order.
func allIntValues(data []byte, name string) []int {
	var out []int

	from := 0
	for {
		hdr, ok := property.FindProperty(data, name, 0, from)
		if !ok {
			break
		}
		from = hdr.NameOffset + 1

		v, _, err := property.DecodeRecord(data, hdr)
		if err != nil {
			continue
		}
		if n, ok := v.AsInt(); ok {
			out = append(out, int(n))
		}
	}

	return out
}
