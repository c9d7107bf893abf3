// Package acdc implements the Authentic Chained Data Container data model:
// self-addressed credentials carrying a schema reference, subject
// attributes, and SAID-valued edges to other ACDCs.
package acdc

import "errors"

var (
	ErrNoIssuer       = errors.New("acdc: issuer AID is required")
	ErrNoSchema       = errors.New("acdc: schema SAID is required")
	ErrSaidMismatch   = errors.New("acdc: recomputed SAID does not match stored value")
	ErrMalformed      = errors.New("acdc: malformed credential document")
)
