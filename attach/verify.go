package attach

import (
	"fmt"

	"github.com/datatrails/go-datatrails-keri/xcrypto"
)

// VerifyResult is the diagnostic outcome of VerifyEvent: accumulated
// rather than thrown, per the core's error-taxonomy design.
type VerifyResult struct {
	Valid         bool
	VerifiedCount int
	RequiredCount int
	SignedIndices map[int]bool
	Errors        []string
	Warnings      []string
}

// VerifyEvent parses a signed stream (event bytes followed by a "-AAD"
// group), verifies each indexed signature against expectedKeys[idx], and
// reports whether at least threshold distinct indices verified. Excess
// valid signatures beyond the threshold are recorded as warnings, not
// failures.
func VerifyEvent(signedBytes []byte, expectedKeys []xcrypto.Verfer, threshold int) VerifyResult {
	result := VerifyResult{SignedIndices: map[int]bool{}, RequiredCount: threshold}

	event, group := ParseCesrStream(signedBytes)
	if group == nil {
		result.Errors = append(result.Errors, ErrNotIndexedGroup.Error())
		return result
	}

	sigs, err := ParseIndexedSignatures(group)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	for _, sig := range sigs {
		if sig.Index < 0 || sig.Index >= len(expectedKeys) {
			result.Errors = append(result.Errors, fmt.Sprintf("attach: signature index %d out of range for %d keys", sig.Index, len(expectedKeys)))
			continue
		}
		if result.SignedIndices[sig.Index] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("attach: duplicate signature at index %d", sig.Index))
			continue
		}
		if !expectedKeys[sig.Index].Verify(sig.Cigar, event) {
			result.Errors = append(result.Errors, fmt.Sprintf("attach: signature at index %d failed verification", sig.Index))
			continue
		}
		result.SignedIndices[sig.Index] = true
		result.VerifiedCount++
	}

	if result.VerifiedCount > threshold {
		result.Warnings = append(result.Warnings, fmt.Sprintf("attach: %d valid signatures exceed threshold %d", result.VerifiedCount, threshold))
	}
	result.Valid = result.VerifiedCount >= threshold
	return result
}
