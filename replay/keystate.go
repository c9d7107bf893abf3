package replay

import (
	"strconv"

	"github.com/datatrails/go-datatrails-keri/keri"
	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/xcrypto"
)

// KeyState is the pure fold of a KEL up to some event: the keys and
// pre-rotation commitment in force, plus the chain position. It must
// always be recomputable from stored events; callers that cache it are
// responsible for invalidating the cache on every write to the same AID.
type KeyState struct {
	AID              string
	Sn               int
	CurrentKeys      []string
	NextDigests      []string
	CurrentThreshold keri.Tholder
	NextThreshold    keri.Tholder
	LastEventDigest  string
}

func getString(ked *ordered.Map, key string) (string, bool) {
	v, ok := ked.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func getStringSlice(ked *ordered.Map, key string) ([]string, bool) {
	v, ok := ked.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func parseSeq(s string) (int, error) {
	n, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// FoldEvent advances prior (nil for the first event) by one KEL event,
// enforcing inception-first, sequence/prior chaining, the pre-rotation
// commitment on rot/drt, and the no-key-change rule on ixn.
func FoldEvent(prior *KeyState, ked *ordered.Map) (*KeyState, error) {
	t, _ := getString(ked, "t")
	d, _ := getString(ked, "d")
	i, _ := getString(ked, "i")
	sStr, _ := getString(ked, "s")
	sn, err := parseSeq(sStr)
	if err != nil {
		return nil, ErrMissingField
	}

	switch t {
	case "icp", "dip":
		if prior != nil {
			return nil, ErrNotInception
		}
		if sn != 0 {
			return nil, ErrWrongSeqNum
		}
		keys, _ := getStringSlice(ked, "k")
		nexts, _ := getStringSlice(ked, "n")
		ktRaw, _ := ked.Get("kt")
		ntRaw, _ := ked.Get("nt")
		kt, err := keri.ParseTholderValue(ktRaw)
		if err != nil {
			return nil, err
		}
		nt, err := keri.ParseTholderValue(ntRaw)
		if err != nil {
			return nil, err
		}
		return &KeyState{
			AID: i, Sn: sn, CurrentKeys: keys, NextDigests: nexts,
			CurrentThreshold: kt, NextThreshold: nt, LastEventDigest: d,
		}, nil

	case "rot", "drt":
		if prior == nil {
			return nil, ErrMissingPriorState
		}
		p, _ := getString(ked, "p")
		if p != prior.LastEventDigest {
			return nil, ErrWrongPrior
		}
		if sn != prior.Sn+1 {
			return nil, ErrWrongSeqNum
		}
		keys, _ := getStringSlice(ked, "k")
		nexts, _ := getStringSlice(ked, "n")
		committed := make(map[string]bool, len(prior.NextDigests))
		for _, dig := range prior.NextDigests {
			committed[dig] = true
		}
		for _, k := range keys {
			digest, err := xcrypto.DigerString(k, "")
			if err != nil {
				return nil, err
			}
			if !committed[digest] {
				return nil, ErrRotationKeyNotCommitted
			}
		}
		ktRaw, _ := ked.Get("kt")
		ntRaw, _ := ked.Get("nt")
		kt, err := keri.ParseTholderValue(ktRaw)
		if err != nil {
			return nil, err
		}
		nt, err := keri.ParseTholderValue(ntRaw)
		if err != nil {
			return nil, err
		}
		return &KeyState{
			AID: prior.AID, Sn: sn, CurrentKeys: keys, NextDigests: nexts,
			CurrentThreshold: kt, NextThreshold: nt, LastEventDigest: d,
		}, nil

	case "ixn":
		if prior == nil {
			return nil, ErrMissingPriorState
		}
		p, _ := getString(ked, "p")
		if p != prior.LastEventDigest {
			return nil, ErrWrongPrior
		}
		if sn != prior.Sn+1 {
			return nil, ErrWrongSeqNum
		}
		next := *prior
		next.Sn = sn
		next.LastEventDigest = d
		return &next, nil

	default:
		return nil, ErrUnknownEventType
	}
}
