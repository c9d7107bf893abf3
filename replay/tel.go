package replay

import "github.com/datatrails/go-datatrails-keri/ordered"

// CredentialStatus is the replayed state of one credential within a TEL.
type CredentialStatus int

const (
	StatusNotFound CredentialStatus = iota
	StatusIssued
	StatusRevoked
)

func (s CredentialStatus) String() string {
	switch s {
	case StatusIssued:
		return "issued"
	case StatusRevoked:
		return "revoked"
	default:
		return "not-found"
	}
}

// ReplayCredentialStatus walks a registry's TEL events (in stored order)
// looking for the iss event matching acdcSaid, then the highest-sequence
// rev event matching the same SAID; the credential is revoked when that
// rev's sequence number is above the iss's. Once a credential is revoked no
// later replay can recompute it as issued: a later rev always wins over an
// earlier iss regardless of scan order, since only the max sn rev matters.
func ReplayCredentialStatus(events []*ordered.Map, acdcSaid string) CredentialStatus {
	found := false
	issSn, maxRevSn := 0, -1
	for _, ked := range events {
		t, _ := getString(ked, "t")
		i, _ := getString(ked, "i")
		if i != acdcSaid {
			continue
		}
		sStr, _ := getString(ked, "s")
		sn, err := parseSeq(sStr)
		if err != nil {
			continue
		}
		switch t {
		case "iss":
			if !found || sn < issSn {
				issSn = sn
			}
			found = true
		case "rev":
			if sn > maxRevSn {
				maxRevSn = sn
			}
		}
	}
	if !found {
		return StatusNotFound
	}
	if maxRevSn > issSn {
		return StatusRevoked
	}
	return StatusIssued
}
