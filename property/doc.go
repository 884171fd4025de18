// Package property implements the binary property extraction engine for
// ARK: Survival Ascended save data.
//
// Save files (.arkprofile, .arktribe) and game-object blobs from the world
// database all share one grammar: a sequence of named, type-tagged property
// records in Unreal Engine serialization. There is no schema table, so the
// engine is anchor-driven: it searches a buffer for a known property name,
// validates that the bytes around the match form a plausible record header
// (length prefix before the name, a well-formed type tag string after it),
// and only then decodes the value.
//
// The package is layered bottom-up:
//
//   - Cursor: bounds-checked sequential reads over an immutable buffer.
//   - Tag / Value: the closed set of recognized property types and the
//     tagged union of decoded values.
//   - FindProperty: the anchor scanner, including occurrence indexing for
//     repeated properties.
//   - DecodeValue / DecodeRecord: the type decoder registry, recursing into
//     array and struct payloads.
//
// Everything here is a pure function of (buffer, offset): no decode
// mutates the buffer, no state survives a call, and any number of decodes
// may run concurrently on independent buffers.
package property
