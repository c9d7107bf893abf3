// Package keri builds and validates Key Event Log events: inception,
// rotation, and interaction, plus the signing threshold they are gated by.
package keri

import "errors"

var (
	ErrThresholdExceedsKeys = errors.New("keri: threshold exceeds available key count")
	ErrWeightedSumTooLow    = errors.New("keri: weighted clause sum is below 1")
	ErrInvalidThreshold     = errors.New("keri: threshold value is malformed")
	ErrNoKeys               = errors.New("keri: at least one key is required")
	ErrKeyDigestMismatch    = errors.New("keri: rotation key digest is not committed in prior next-digests")
	ErrInvalidSeqNum        = errors.New("keri: sequence number must be >= 1 for rotation or interaction")
	ErrLengthMismatch       = errors.New("keri: keys and next-digests counts disagree with threshold shape")
)
