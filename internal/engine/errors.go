package engine

import "errors"

// Sentinel errors returned by engine operations. Callers use [errors.Is]
// to classify a failure without string matching.
var (
	// ErrFileIo wraps any failure reading, writing, or locking the
	// loaded binary on disk.
	ErrFileIo = errors.New("file io error")

	// ErrBadOffset is returned when an offset token cannot be parsed.
	ErrBadOffset = errors.New("bad offset")

	// ErrBadPattern is returned when a byte pattern is empty, or
	// (for patch/savetpl/applytpl) contains a wildcard token.
	ErrBadPattern = errors.New("bad pattern")

	// ErrOutOfRange is returned when an offset or region falls outside
	// the loaded file.
	ErrOutOfRange = errors.New("out of range")

	// ErrUnknownTemplate is returned by applytpl for an unsaved name.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrExternalWriteFailed is returned when mempatch cannot write to
	// the target process, or writes fewer bytes than requested.
	ErrExternalWriteFailed = errors.New("external write failed")

	// ErrNoFileLoaded is returned by any operation that requires a
	// loaded file when none has been opened.
	ErrNoFileLoaded = errors.New("no file loaded")
)
