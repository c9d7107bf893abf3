package said

import (
	"encoding/json"
	"strings"

	"github.com/datatrails/go-datatrails-keri/cesr"
	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/xcrypto"
)

// DefaultLabel is the field a SAID is written into absent any other
// instruction ("d" for KEL/TEL/ACDC outer SAIDs).
const DefaultLabel = "d"

// Saidify fills label in obj with a placeholder of the chosen code's full
// size, serializes the result with ordered.Map's stable field order,
// digests the bytes, and writes the digest back into label. It returns the
// updated object, the computed SAID, and the exact bytes that were
// digested (== the canonical serialization of the returned object).
func Saidify(obj *ordered.Map, label string, code string) (*ordered.Map, string, []byte, error) {
	out, digest, data, err := SaidifyLabels(obj, []string{label}, code)
	return out, digest, data, err
}

// SaidifyLabels is the general form of Saidify: every label in labels is
// filled with an identical placeholder and then with the same resulting
// digest. This is how self-addressing AIDs are bound: the inception
// event's "i" and "d" fields are both placeholders of the same size and
// both resolve to the same SAID.
func SaidifyLabels(obj *ordered.Map, labels []string, code string) (*ordered.Map, string, []byte, error) {
	if code == "" {
		code = xcrypto.DefaultDigestCode
	}
	size, err := xcrypto.FullSize(code)
	if err != nil {
		return nil, "", nil, err
	}

	clone := obj.Clone()
	placeholder := strings.Repeat("#", size)
	for _, label := range labels {
		if err := clone.SetPath(label, placeholder); err != nil {
			return nil, "", nil, err
		}
	}
	data, err := json.Marshal(clone)
	if err != nil {
		return nil, "", nil, err
	}

	digest, err := xcrypto.Diger(data, code)
	if err != nil {
		return nil, "", nil, err
	}
	for _, label := range labels {
		if err := clone.SetPath(label, digest); err != nil {
			return nil, "", nil, err
		}
	}
	final, err := json.Marshal(clone)
	if err != nil {
		return nil, "", nil, err
	}
	return clone, digest, final, nil
}

// VerifySaid recomputes the SAID of obj at label (using the derivation
// code of the currently stored value) and compares it against the stored
// value.
func VerifySaid(obj *ordered.Map, label string) (bool, error) {
	current, ok := obj.GetPath(label)
	if !ok {
		return false, ErrMissingLabel
	}
	currentStr, ok := current.(string)
	if !ok {
		return false, ErrInvalidLabelValue
	}
	code, _, _, err := cesr.Decode(currentStr)
	if err != nil {
		return false, ErrInvalidLabelValue
	}

	_, recomputed, _, err := Saidify(obj, label, code)
	if err != nil {
		return false, err
	}
	return recomputed == currentStr, nil
}
