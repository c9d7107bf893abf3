// Package replay derives KEL key state by folding events in order, and
// computes TEL credential status the same way: by replaying, never by
// caching state that storage itself does not hold.
package replay

import "errors"

var (
	ErrNotInception        = errors.New("replay: first KEL event is not icp/dip")
	ErrWrongSeqNum         = errors.New("replay: event sequence number does not match position")
	ErrWrongPrior          = errors.New("replay: event prior digest does not chain to the previous event")
	ErrMissingPriorState   = errors.New("replay: rotation/interaction requires a prior key state")
	ErrRotationKeyNotCommitted = errors.New("replay: rotation key digest is not in the prior next-digest set")
	ErrThresholdNotMet     = errors.New("replay: verified signature count is below the required threshold")
	ErrUnknownEventType    = errors.New("replay: unrecognized event type")
	ErrMissingField        = errors.New("replay: event is missing a required field")
)
