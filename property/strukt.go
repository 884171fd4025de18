package property

import (
	"fmt"

	"github.com/BoldPhoenix/ark-asa-parser/errs"
)

// Strategy names recorded on decoded StructValues.
const (
	// StrategyWalk is the sequential field walk over the payload.
	StrategyWalk = "walk"
	// StrategyAnchor is the anchor scan for known sub-field names.
	StrategyAnchor = "anchor-scan"
)

// StructStrategy is one candidate way to recover the fields of a struct
// payload. Strategies are tried strictly in the order of StructStrategies;
// the first one to produce a self-consistent result wins. Self-consistent
// means every decoded field stays inside the payload bounds and, for the
// walk, the bytes consumed reconcile with the declared size.
//
// The fallback exists because real save buffers embed struct payloads that
// do not follow the tagged-property grammar (inventory item stacks carry
// raw engine state between the recognizable fields). Those payloads defeat
// a sequential walk but still contain well-formed anchors for the fields
// worth extracting.
type StructStrategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string
	// Decode attempts to extract fields from the payload of hdr.
	// anchors lists sub-field names worth scanning for; strategies that
	// need them fail cleanly when none are supplied.
	Decode(data []byte, hdr RecordHeader, anchors []string) (*StructValue, error)
}

// StructStrategies is the ordered fallback list applied by
// DecodeStructPayload. The order is a documented contract: the exact
// grammar walk is always preferred, and the heuristic anchor scan runs
// only when the walk cannot parse the payload.
var StructStrategies = []StructStrategy{
	walkStrategy{},
	anchorStrategy{},
}

// DecodeStructPayload decodes the struct payload located by hdr, trying
// each strategy in StructStrategies until one succeeds. The returned
// StructValue records which strategy produced it.
func DecodeStructPayload(data []byte, hdr RecordHeader, anchors []string) (*StructValue, error) {
	var firstErr error
	for _, strat := range StructStrategies {
		sv, err := strat.Decode(data, hdr, anchors)
		if err == nil {
			return sv, nil
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", strat.Name(), err)
		}
	}

	return nil, fmt.Errorf("%w: no struct strategy succeeded: %v", errs.ErrMalformed, firstErr)
}

// decodeStructTop decodes a top-level StructProperty payload: struct type
// name, 16-byte GUID, then a field walk to the "None" sentinel. This is
// the walk strategy as invoked from the decoder registry.
func decodeStructTop(cur *Cursor, size int64) (Value, error) {
	start := cur.Pos()

	typeName, err := cur.ReadString()
	if err != nil {
		return Value{}, err
	}
	guid, err := cur.ReadGUID()
	if err != nil {
		return Value{}, err
	}
	fields, err := decodeFields(cur)
	if err != nil {
		return Value{}, err
	}

	if consumed := int64(cur.Pos() - start); size > 0 && consumed != size {
		return Value{}, fmt.Errorf("%w: struct consumed %d bytes, declared %d",
			errs.ErrMalformed, consumed, size)
	}

	return StructVal(&StructValue{
		TypeName: typeName,
		GUID:     guid,
		Fields:   fields,
		Strategy: StrategyWalk,
	}), nil
}

// decodeFields walks nested property records until the "None" sentinel
// (or an empty name, which some writers emit at the end of a payload).
//
// Unknown inner tags with a declared size are tolerated: they become
// Unknown entries and the walk continues past them, so a partially
// understood struct still yields its recognizable fields. An unknown tag
// without a size leaves nothing to skip by; the entry is recorded with an
// empty payload and the walk continues, failing naturally at the next
// record if bytes were actually present.
func decodeFields(cur *Cursor) ([]Field, error) {
	var fields []Field
	for {
		name, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		if name == "" || name == "None" {
			return fields, nil
		}

		tagName, err := cur.ReadString()
		if err != nil {
			return nil, err
		}
		if !WellFormedTagName(tagName) {
			return nil, fmt.Errorf("%w: field %q tag %q", errs.ErrMalformed, name, tagName)
		}
		size, err := cur.ReadInt64()
		if err != nil {
			return nil, err
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: field %q declared size %d", errs.ErrMalformed, name, size)
		}
		if err := cur.Skip(1); err != nil { // padding byte
			return nil, err
		}

		tag := ParseTag(tagName)
		var value Value
		if tag == TagUnknown {
			raw, err := cur.ReadBytes(int(size))
			if err != nil {
				return nil, err
			}
			value = UnknownValue(tagName, raw)
		} else {
			value, err = DecodeValue(cur, tag, tagName, size)
			if err != nil {
				return nil, err
			}
		}

		fields = append(fields, Field{Name: name, Value: value})
	}
}

type walkStrategy struct{}

func (walkStrategy) Name() string { return StrategyWalk }

func (walkStrategy) Decode(data []byte, hdr RecordHeader, _ []string) (*StructValue, error) {
	cur := NewCursor(data)
	if err := cur.Seek(hdr.ValueOffset); err != nil {
		return nil, err
	}

	v, err := decodeStructTop(&cur, hdr.Size)
	if err != nil {
		return nil, err
	}
	sv, _ := v.Struct()

	return sv, nil
}

type anchorStrategy struct{}

func (anchorStrategy) Name() string { return StrategyAnchor }

// Decode scans the payload range for the supplied sub-field anchors and
// decodes each hit independently. The result is self-consistent when at
// least one field decoded and every decode stayed inside the payload.
func (anchorStrategy) Decode(data []byte, hdr RecordHeader, anchors []string) (*StructValue, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: no anchors supplied", errs.ErrMalformed)
	}

	bound := hdr.End()
	if bound > len(data) || hdr.Size <= 0 {
		bound = len(data)
	}

	var fields []Field
	for _, name := range anchors {
		for occ := 0; ; occ++ {
			sub, ok := FindProperty(data, name, occ, hdr.ValueOffset)
			if !ok || sub.NameOffset >= bound {
				break
			}
			value, consumed, err := DecodeRecord(data, sub)
			if err != nil {
				continue // a misparse of one anchor does not poison the rest
			}
			if sub.ValueOffset+consumed > bound {
				return nil, fmt.Errorf("%w: field %q overruns struct payload", errs.ErrMalformed, name)
			}
			fields = append(fields, Field{Name: name, Value: value})
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no anchored fields found", errs.ErrMalformed)
	}

	return &StructValue{Fields: fields, Strategy: StrategyAnchor}, nil
}
