package keri

import (
	"strconv"

	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/said"
	"github.com/datatrails/go-datatrails-keri/xcrypto"
)

// Event bundles the parties' result of a builder call: the ordered KED
// ("key event dict"), the exact bytes that were signed, and the derived
// SAID (also present inside ked at "d").
type Event struct {
	KED  *ordered.Map
	Raw  []byte
	Said string
}

// InceptArgs configures Incept.
type InceptArgs struct {
	Keys     []string // verfer qb64 strings
	NextDigs []string // pre-rotation commitment digests, diger(nextKeyQb64)
	Isith    Tholder
	Nsith    Tholder
	Witnesses []string
	Toad      int
	Cnfg      []string
	Data      []any
	Code      string
	Delpre    string // non-empty selects dip (delegated inception)
}

// Incept builds an icp (or dip, when Delpre is set) event. For a
// non-delegated single-key transferable inception the AID equals the first
// key's qb64, per §3's AID-binding rule; otherwise (multi-key or delegated)
// the AID is self-addressing and bound simultaneously with the event SAID.
func Incept(args InceptArgs) (Event, error) {
	if len(args.Keys) == 0 {
		return Event{}, ErrNoKeys
	}
	if err := args.Isith.Validate(len(args.Keys)); err != nil {
		return Event{}, err
	}
	if len(args.NextDigs) > 0 {
		if err := args.Nsith.Validate(len(args.NextDigs)); err != nil {
			return Event{}, err
		}
	}

	t := "icp"
	if args.Delpre != "" {
		t = "dip"
	}

	selfAddressing := len(args.Keys) > 1 || args.Delpre != ""

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", t)
	ked.Set("d", "")
	if selfAddressing {
		ked.Set("i", "")
	} else {
		ked.Set("i", args.Keys[0])
	}
	ked.Set("s", "0")
	ked.Set("kt", args.Isith.Value())
	ked.Set("k", toAnySlice(args.Keys))
	ked.Set("nt", args.Nsith.Value())
	ked.Set("n", toAnySlice(args.NextDigs))
	ked.Set("bt", strconv.Itoa(args.Toad))
	ked.Set("b", toAnySlice(args.Witnesses))
	ked.Set("c", toAnySlice(args.Cnfg))
	ked.Set("a", args.Data)
	if args.Delpre != "" {
		ked.Set("di", args.Delpre)
	}

	var final *ordered.Map
	var digest string
	var data []byte
	var err error
	if selfAddressing {
		final, digest, data, err = said.SaidifyEventLabels(ked, said.ProtoKERI, []string{"i", "d"}, args.Code)
	} else {
		final, digest, data, err = said.SaidifyEvent(ked, said.ProtoKERI, "d", args.Code)
	}
	if err != nil {
		return Event{}, err
	}
	return Event{KED: final, Raw: data, Said: digest}, nil
}

// RotateArgs configures Rotate.
type RotateArgs struct {
	Pre      string // AID being rotated
	Keys     []string
	NextDigs []string
	PriorDig string // prior event's SAID, event.p
	Sn       int    // sequence number, must be >= 1
	Isith    Tholder
	Nsith    Tholder
	Witnesses []string
	CutWits   []string
	AddWits   []string
	Toad      int
	Data      []any
	Code      string
	Delpre    string // non-empty selects drt
	PriorNext []string // prior event's "n" digests, for the commitment check
}

// Rotate builds a rot (or drt) event. When PriorNext is given it enforces
// the pre-rotation commitment invariant: every new key's digest must appear
// in that next-digest set. With PriorNext empty no commitment check is made
// here.
func Rotate(args RotateArgs) (Event, error) {
	if args.Sn < 1 {
		return Event{}, ErrInvalidSeqNum
	}
	if len(args.Keys) == 0 {
		return Event{}, ErrNoKeys
	}
	if err := args.Isith.Validate(len(args.Keys)); err != nil {
		return Event{}, err
	}
	if len(args.PriorNext) > 0 {
		committed := make(map[string]bool, len(args.PriorNext))
		for _, d := range args.PriorNext {
			committed[d] = true
		}
		for _, k := range args.Keys {
			digest, err := xcrypto.DigerString(k, args.Code)
			if err != nil {
				return Event{}, err
			}
			if !committed[digest] {
				return Event{}, ErrKeyDigestMismatch
			}
		}
	}

	t := "rot"
	if args.Delpre != "" {
		t = "drt"
	}

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", t)
	ked.Set("d", "")
	ked.Set("i", args.Pre)
	ked.Set("s", strconv.FormatInt(int64(args.Sn), 16))
	ked.Set("p", args.PriorDig)
	ked.Set("kt", args.Isith.Value())
	ked.Set("k", toAnySlice(args.Keys))
	ked.Set("nt", args.Nsith.Value())
	ked.Set("n", toAnySlice(args.NextDigs))
	ked.Set("bt", strconv.Itoa(args.Toad))
	ked.Set("br", toAnySlice(args.CutWits))
	ked.Set("ba", toAnySlice(args.AddWits))
	ked.Set("a", args.Data)

	final, digest, data, err := said.SaidifyEvent(ked, said.ProtoKERI, "d", args.Code)
	if err != nil {
		return Event{}, err
	}
	return Event{KED: final, Raw: data, Said: digest}, nil
}

// InteractArgs configures Interact.
type InteractArgs struct {
	Pre      string
	Sn       int
	PriorDig string
	Seals    []any
	Data     []any
	Code     string
}

// Interact builds an ixn event; no key change occurs, so signatures on an
// ixn verify against the most recent establishment event's keys.
func Interact(args InteractArgs) (Event, error) {
	if args.Sn < 1 {
		return Event{}, ErrInvalidSeqNum
	}
	anchors := make([]any, 0, len(args.Seals)+len(args.Data))
	anchors = append(anchors, args.Seals...)
	anchors = append(anchors, args.Data...)

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", "ixn")
	ked.Set("d", "")
	ked.Set("i", args.Pre)
	ked.Set("s", strconv.FormatInt(int64(args.Sn), 16))
	ked.Set("p", args.PriorDig)
	ked.Set("a", anchors)

	final, digest, data, err := said.SaidifyEvent(ked, said.ProtoKERI, "d", args.Code)
	if err != nil {
		return Event{}, err
	}
	return Event{KED: final, Raw: data, Said: digest}, nil
}

func toAnySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
