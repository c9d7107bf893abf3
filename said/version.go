package said

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/datatrails/go-datatrails-keri/ordered"
)

// ProtoKERI and ProtoACDC are the two version-string protocol tags.
const (
	ProtoKERI = "KERI"
	ProtoACDC = "ACDC"

	versionStringLen = 17
)

// VersionString builds the 17-character frame
// "<protocol>10JSON<6-hex-size>_".
func VersionString(protocol string, size int) string {
	return fmt.Sprintf("%s10JSON%06x_", protocol, size)
}

// ParseVersionString splits a version-string frame back into its protocol
// and encoded byte size.
func ParseVersionString(v string) (protocol string, size int, err error) {
	if len(v) != versionStringLen || !strings.HasSuffix(v, "_") {
		return "", 0, ErrInvalidVersion
	}
	protocol = v[0:4]
	if protocol != ProtoKERI && protocol != ProtoACDC {
		return "", 0, ErrInvalidVersion
	}
	if v[4:10] != "10JSON" {
		return "", 0, ErrInvalidVersion
	}
	n, err := strconv.ParseInt(v[10:16], 16, 64)
	if err != nil {
		return "", 0, ErrInvalidVersion
	}
	return protocol, int(n), nil
}

// SaidifyEvent performs the two-pass event build: it first measures the
// serialized length with both "v" and the SAID label set to placeholders,
// rewrites "v" with that exact byte length, and only then computes the
// SAID over the final bytes.
func SaidifyEvent(ked *ordered.Map, protocol string, label string, code string) (*ordered.Map, string, []byte, error) {
	if label == "" {
		label = DefaultLabel
	}
	return SaidifyEventLabels(ked, protocol, []string{label}, code)
}

// SaidifyEventLabels is the general form of SaidifyEvent for events whose
// SAID must be written into more than one field at once, as with a
// self-addressing AID where the inception event's "i" and "d" are both the
// event's own SAID.
func SaidifyEventLabels(ked *ordered.Map, protocol string, labels []string, code string) (*ordered.Map, string, []byte, error) {
	pass1 := ked.Clone()
	pass1.Set("v", VersionString(protocol, 0))
	_, _, data1, err := SaidifyLabels(pass1, labels, code)
	if err != nil {
		return nil, "", nil, err
	}

	pass2 := ked.Clone()
	pass2.Set("v", VersionString(protocol, len(data1)))
	final, digest, data2, err := SaidifyLabels(pass2, labels, code)
	if err != nil {
		return nil, "", nil, err
	}
	return final, digest, data2, nil
}

// VerifyEventSaid recomputes both the version string's encoded size and the
// label's SAID and checks both against the stored event bytes/object.
func VerifyEventSaid(ked *ordered.Map, label string) (bool, error) {
	vRaw, ok := ked.Get("v")
	if !ok {
		return false, ErrInvalidVersion
	}
	vStr, ok := vRaw.(string)
	if !ok {
		return false, ErrInvalidVersion
	}
	protocol, size, err := ParseVersionString(vStr)
	if err != nil {
		return false, err
	}

	data, err := json.Marshal(ked)
	if err != nil {
		return false, err
	}
	if len(data) != size {
		return false, nil
	}
	_ = protocol

	return VerifySaid(ked, label)
}
