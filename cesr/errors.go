// Package cesr implements the Composable Event Streaming Representation
// primitive codec: fully-qualified base64url encoding of cryptographic
// material under a fixed derivation-code table.
package cesr

import "errors"

var (
	ErrInvalidCode          = errors.New("cesr: unknown derivation code")
	ErrInvalidFirstChar     = errors.New("cesr: first character does not select a known hard-size class")
	ErrInsufficientMaterial = errors.New("cesr: qb64 string too short for its code's full size")
	ErrNonZeroMidpad        = errors.New("cesr: decoded midpad bytes are non-zero")
	ErrMisalignedCode       = errors.New("cesr: code size is not aligned with the raw material length")
	ErrInvalidRawSize       = errors.New("cesr: raw material length is not valid for this code")
)
