package vortex

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyFinalized is returned by Finalize (and Write) once a Hasher
	// or MAC has produced its digest.
	ErrAlreadyFinalized = errors.New("vortex: already finalized")

	// ErrInvalidConfiguration is returned when a SecurityConfig is built
	// from unusable input, such as a key of the wrong length.
	ErrInvalidConfiguration = errors.New("vortex: invalid configuration")
)

// IOError wraps an error returned by the byte source of SumReader.
//
// The source error is available via errors.Unwrap, so errors.Is and
// errors.As see it unchanged.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("vortex: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ErrInvalidDigest indicates a hex string that does not decode to a digest.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDigest struct {
	Length int
	cause  error
}

func (e *ErrInvalidDigest) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("vortex: invalid digest: %v", e.cause)
	}
	return fmt.Sprintf("vortex: invalid digest length: expected %d bytes, got %d", Size, e.Length)
}

func (e *ErrInvalidDigest) Unwrap() error { return e.cause }
