// Package attach builds and parses the CESR indexed-signature attachment
// group ("-AAD") that follows a signed event on the wire, and verifies a
// signed stream against a set of expected keys and a threshold.
package attach

import "errors"

var (
	ErrNotIndexedGroup   = errors.New("attach: stream has no -AAD indexed signature group")
	ErrTruncatedGroup    = errors.New("attach: indexed signature group is shorter than its declared count")
	ErrBadIndexChar      = errors.New("attach: signature index character is not a valid CESR index code")
	ErrIndexOutOfRange   = errors.New("attach: signature index exceeds the expected key count")
	ErrUnsupportedSigCode = errors.New("attach: signature is not a recognized 88-char code")
)
