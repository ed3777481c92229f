package gapbuffer

import "errors"

// Errors returned by buffer operations.
var (
	ErrOutOfMemory     = errors.New("buffer size limit exceeded")
	ErrInvalidPosition = errors.New("position out of range")
	ErrInvalidRange    = errors.New("invalid range")
	ErrEncoding        = errors.New("malformed text encoding")
	ErrReadOnly        = errors.New("buffer is read-only")
	ErrNoPath          = errors.New("buffer has no associated file path")
)
