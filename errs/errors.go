// Package errs defines the sentinel errors shared across the module.
//
// Callers match them with errors.Is; call sites add context by wrapping,
// e.g. fmt.Errorf("%w: declared size %d exceeds remaining %d", errs.ErrTruncated, size, rem).
//
// The decode taxonomy is deliberately small:
//
//   - ErrTruncated: a read or a declared size runs past the end of the
//     buffer. Aborts only the field being decoded, never the whole entity.
//   - ErrMalformed: an internal consistency violation, such as a negative
//     declared size or an array whose element bytes do not sum to its
//     declared payload.
//   - ErrUnsupportedType: a recognized property anchor carrying a type tag
//     string outside the known set, with no declared size to skip by.
//
// A property that is simply absent from a buffer is not an error at all;
// the scanner reports absence with an ok=false result.
package errs

import "errors"

// Decode errors.
var (
	ErrTruncated       = errors.New("property data truncated")
	ErrMalformed       = errors.New("malformed property record")
	ErrUnsupportedType = errors.New("unsupported property type")
	ErrBadString       = errors.New("invalid length-prefixed string")
	ErrBadTag          = errors.New("invalid property tag")
)

// Byte source errors.
var (
	ErrSourceClosed = errors.New("byte source is closed")
	ErrUnknownMagic = errors.New("unrecognized compression magic")
)

// World store errors.
var (
	ErrStoreClosed = errors.New("world store is closed")
	ErrNoSuchKey   = errors.New("no such game object key")
)

// Save directory errors.
var (
	ErrNotDirectory  = errors.New("path is not a directory")
	ErrNoWorldSave   = errors.New("world save database not found")
	ErrWatcherActive = errors.New("watcher is already running")
)
