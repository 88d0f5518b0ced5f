// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable
	// so that foreign records do not leak their existence.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated indicates the caller identity could not be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrValidation indicates rejected input. Wrap it with the field detail:
	// fmt.Errorf("%w: empty name", ErrValidation).
	ErrValidation = errors.New("validation")
)
