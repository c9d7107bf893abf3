// Package said computes and verifies self-addressing identifiers: a
// digest of a canonically serialized object, written back into the field
// it was computed over.
package said

import "errors"

var (
	ErrSaidMismatch      = errors.New("said: recomputed digest does not match stored value")
	ErrMissingLabel      = errors.New("said: label field is absent")
	ErrInvalidLabelValue = errors.New("said: label value is not a qb64 digest")
	ErrInvalidVersion    = errors.New("said: version string is malformed")
)
