package acdc

import (
	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/said"
)

// Credential bundles an issued ACDC's ordered document, the exact bytes
// that were digested for its outer SAID, and that SAID.
type Credential struct {
	KED  *ordered.Map
	Raw  []byte
	Said string
}

// Edge is one entry of an ACDC's "e" block: a SAID-valued reference to
// another credential, optionally pinned to a specific schema.
type Edge struct {
	Name       string
	Said       string
	SchemaSaid string
}

// IssueArgs configures Issue.
type IssueArgs struct {
	Issuer     string // "i": issuer AID
	Registry   string // "ri": owning TEL registry SAID
	SchemaSaid string // "s"
	Holder     string // subject "a.i", omitted when empty
	Attributes *ordered.Map // extra subject fields, inserted in iteration order
	Edges      []Edge
	Code       string
}

// Issue builds an ACDC: `{v,d,i,ri,s,a:{d,i?,...},e?}`. The subject block's
// own SAID ("a.d") is computed first, over the subject block alone; the
// outer document's SAID ("d") is computed second, over the whole document
// with the subject block already finalized, using the same two-pass
// version-string procedure as KERI events.
func Issue(args IssueArgs) (Credential, error) {
	if args.Issuer == "" {
		return Credential{}, ErrNoIssuer
	}
	if args.SchemaSaid == "" {
		return Credential{}, ErrNoSchema
	}

	subject := ordered.New()
	subject.Set("d", "")
	if args.Holder != "" {
		subject.Set("i", args.Holder)
	}
	if args.Attributes != nil {
		for _, k := range args.Attributes.Keys() {
			v, _ := args.Attributes.Get(k)
			subject.Set(k, v)
		}
	}
	subject, _, _, err := said.Saidify(subject, "d", args.Code)
	if err != nil {
		return Credential{}, err
	}

	ked := ordered.New()
	ked.Set("v", "")
	ked.Set("d", "")
	ked.Set("i", args.Issuer)
	if args.Registry != "" {
		ked.Set("ri", args.Registry)
	}
	ked.Set("s", args.SchemaSaid)
	ked.Set("a", subject)
	if len(args.Edges) > 0 {
		e := ordered.New()
		for _, edge := range args.Edges {
			ref := ordered.New()
			ref.Set("n", edge.Said)
			if edge.SchemaSaid != "" {
				ref.Set("s", edge.SchemaSaid)
			}
			e.Set(edge.Name, ref)
		}
		ked.Set("e", e)
	}

	final, digest, data, err := said.SaidifyEvent(ked, said.ProtoACDC, "d", args.Code)
	if err != nil {
		return Credential{}, err
	}
	return Credential{KED: final, Raw: data, Said: digest}, nil
}

// Verify recomputes both the subject block's SAID ("a.d") and the outer
// document's SAID ("d") and checks the event wraps its version string
// correctly. A tampered attribute or a tampered edge reference fails the
// subject check, or the outer check, whichever digest it falls under.
func Verify(ked *ordered.Map) (bool, error) {
	subjRaw, ok := ked.Get("a")
	if !ok {
		return false, ErrMalformed
	}
	subject, ok := subjRaw.(*ordered.Map)
	if !ok {
		return false, ErrMalformed
	}
	subjOK, err := said.VerifySaid(subject, "d")
	if err != nil {
		return false, err
	}
	if !subjOK {
		return false, nil
	}
	return said.VerifyEventSaid(ked, "d")
}
