// Package index implements the parallel, write-time structured index: for
// every event the store accepts, the indexer independently re-resolves
// the expected signing keys by replaying the owning KEL, re-verifies the
// attached signatures, and appends a structured entry. It never derives
// from the raw store lazily — the two are kept in step and cross-checked.
package index

import "errors"

var (
	ErrIntegrityEventMismatch  = errors.New("index: indexed event count does not match raw store count")
	ErrIntegrityMissingEvent   = errors.New("index: indexed event has no corresponding raw event")
	ErrIntegrityInvalidSig     = errors.New("index: recorded signature no longer verifies")
	ErrIntegrityCorruptedData  = errors.New("index: structured index entry is malformed")
	ErrUnresolvedSigner        = errors.New("index: could not resolve a signing key for this event")
	ErrMissingIssuerKEL        = errors.New("index: registry's issuer KEL is not available")
	ErrRotationKeyNotCommitted = errors.New("index: rotation key digest is not in the prior next-digest set")
)
