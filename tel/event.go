package tel

import (
	"strconv"

	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/said"
	"github.com/google/uuid"
)

// NewNonce returns a fresh random nonce suitable for a registry's "n"
// field. RegistryIncept uses one automatically when RegistryInceptArgs.Nonce
// is left empty.
func NewNonce() string {
	return uuid.New().String()
}

// Event bundles a TEL builder's result: the ordered KED, its exact
// serialized bytes, and the derived SAID.
type Event struct {
	KED  *ordered.Map
	Raw  []byte
	Said string
}

// RegistryInceptArgs configures RegistryIncept.
type RegistryInceptArgs struct {
	Issuer  string
	Backers []string
	Nonce   string
	Parent  string // non-empty anchors this registry under a parent registry's SAID
	Code    string
}

// RegistryIncept builds a vcp event. The registry SAID (and "i") is the
// event's own self-addressing digest; a non-empty Parent carries
// e.parent.n so the child can be verified against its parent's anchor.
func RegistryIncept(args RegistryInceptArgs) (Event, error) {
	if args.Issuer == "" {
		return Event{}, ErrMissingIssuer
	}
	nonce := args.Nonce
	if nonce == "" {
		nonce = NewNonce()
	}

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", "vcp")
	ked.Set("d", "")
	ked.Set("i", "")
	ked.Set("ii", args.Issuer)
	ked.Set("s", "0")
	ked.Set("c", []any{})
	ked.Set("bt", strconv.Itoa(len(args.Backers)))
	ked.Set("b", toAnySlice(args.Backers))
	ked.Set("n", nonce)
	if args.Parent != "" {
		e := ordered.New()
		parent := ordered.New()
		parent.Set("n", args.Parent)
		e.Set("parent", parent)
		ked.Set("e", e)
	}

	final, digest, data, err := said.SaidifyEventLabels(ked, said.ProtoKERI, []string{"i", "d"}, args.Code)
	if err != nil {
		return Event{}, err
	}
	return Event{KED: final, Raw: data, Said: digest}, nil
}

// IssueArgs configures Issue.
type IssueArgs struct {
	Vcdig string // credential SAID
	Regk  string // registry SAID
	Dt    string // ISO-8601 timestamp, advisory only per the core's design notes
	Code  string
}

// Issue builds an iss event recording that credential Vcdig was issued
// under registry Regk.
func Issue(args IssueArgs) (Event, error) {
	if args.Vcdig == "" {
		return Event{}, ErrMissingVcdig
	}
	if args.Regk == "" {
		return Event{}, ErrMissingRegistry
	}

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", "iss")
	ked.Set("d", "")
	ked.Set("i", args.Vcdig)
	ked.Set("s", "0")
	ked.Set("ri", args.Regk)
	ked.Set("dt", args.Dt)

	final, digest, data, err := said.SaidifyEvent(ked, said.ProtoKERI, "d", args.Code)
	if err != nil {
		return Event{}, err
	}
	return Event{KED: final, Raw: data, Said: digest}, nil
}

// RevokeArgs configures Revoke.
type RevokeArgs struct {
	Vcdig string // credential SAID
	Regk  string // registry SAID
	Dig   string // prior iss event's SAID
	Dt    string
	Code  string
}

// Revoke builds a rev event. Dig must be the SAID of the credential's iss
// event; sequence number is fixed at "1" since a credential has exactly
// one iss followed by at most one rev in this core's TEL model.
func Revoke(args RevokeArgs) (Event, error) {
	if args.Vcdig == "" {
		return Event{}, ErrMissingVcdig
	}
	if args.Regk == "" {
		return Event{}, ErrMissingRegistry
	}
	if args.Dig == "" {
		return Event{}, ErrMissingPrior
	}

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", "rev")
	ked.Set("d", "")
	ked.Set("i", args.Vcdig)
	ked.Set("s", "1")
	ked.Set("ri", args.Regk)
	ked.Set("p", args.Dig)
	ked.Set("dt", args.Dt)

	final, digest, data, err := said.SaidifyEvent(ked, said.ProtoKERI, "d", args.Code)
	if err != nil {
		return Event{}, err
	}
	return Event{KED: final, Raw: data, Said: digest}, nil
}

// InteractArgs configures Interact, the TEL analogue of a KEL ixn: it
// anchors a nested-registry seal into the registry's own TEL. With
// ChildRegistry empty the event's "a" list is empty.
type InteractArgs struct {
	Regk       string
	Sn         int
	PriorDig   string
	ChildRegistry string // non-empty adds an {i: ChildRegistry, d: ChildVcpSaid} seal to "a"
	ChildVcpSaid  string // paired with ChildRegistry: the child's vcp SAID
	Code       string
}

// Interact builds a TEL ixn anchoring a child registry's inception.
func Interact(args InteractArgs) (Event, error) {
	anchors := []any{}
	if args.ChildRegistry != "" {
		anchors = append(anchors, ordered.New().Set("i", args.ChildRegistry).Set("d", args.ChildVcpSaid))
	}

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("t", "ixn")
	ked.Set("d", "")
	ked.Set("i", args.Regk)
	ked.Set("s", strconv.FormatInt(int64(args.Sn), 16))
	ked.Set("ri", args.Regk)
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
