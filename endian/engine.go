// Package endian provides the byte order engine used by the save-file
// property decoders.
//
// ARK: Survival Ascended serializes every fixed-width value little-endian
// (Unreal Engine convention), independent of the host byte order. The
// decoders therefore take an EndianEngine rather than reaching for
// binary.LittleEndian directly; the indirection keeps the decode primitives
// testable against both orders and mirrors how the rest of the module wires
// its dependencies.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it, so the engine
// carries no state and is safe to share across any number of concurrent
// decodes.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the wire
// order of every ARK save file and the default throughout the module.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. Only tests use it.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// CheckEndianness determines the host's native byte order from a fixed
// integer value.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. Little-endian hosts store the LSB (0x00) first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers
// little-endian, i.e. matching the save-file wire order.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
