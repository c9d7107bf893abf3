package graph

import (
	"context"

	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/parser"
	"github.com/datatrails/go-datatrails-keri/store"
)

// BuildArgs scopes a Build call: the core's KV has no "list everything"
// primitive, so the caller names every AID and registry to walk, exactly
// as index.VerifyIntegrity and index.ExportState do.
type BuildArgs struct {
	AIDs       []string
	Registries []string
	Limit      int        // 0 = unbounded; caps total nodes+edges
	NodeKinds  []NodeKind // empty = include every kind
}

// Build walks the named AIDs' KELs and registries' TELs and assembles a
// node/edge graph: AID and KEL_EVT nodes with PRIOR chains and ANCHOR
// edges to whatever a KEL ixn's seals reference; TEL_REGISTRY and TEL_EVT
// nodes with PARENT_REGISTRY, ISSUES, and REVOKES edges; and, where the
// referenced ACDC content is present in the store, ACDC/SCHEMA nodes with
// SCHEMA_OF and HOLDER_OF edges. Node and edge order is insertion order:
// AIDs and registries are walked in the order the caller lists them, and
// each log is walked oldest-to-newest.
func Build(ctx context.Context, s *store.Store, args BuildArgs) (Graph, error) {
	if len(args.AIDs) == 0 && len(args.Registries) == 0 {
		return Graph{}, ErrNoScope
	}

	b := newBuilder(args.Limit, args.NodeKinds)

	for _, aid := range args.AIDs {
		if err := addKel(ctx, s, b, aid); err != nil {
			return Graph{}, err
		}
	}
	for _, ri := range args.Registries {
		if err := addTel(ctx, s, b, ri); err != nil {
			return Graph{}, err
		}
	}

	return b.g, nil
}

func addKel(ctx context.Context, s *store.Store, b *builder, aid string) error {
	b.addNode(NodeAID, aid)

	events, err := s.ListKel(ctx, aid)
	if err != nil {
		return err
	}
	for _, e := range events {
		if !b.addNode(NodeKELEvent, e.Meta.D) {
			continue
		}
		if e.Meta.P != "" {
			b.addEdge(e.Meta.D, e.Meta.P, EdgePrior)
		}
		if e.Meta.T == "ixn" {
			for _, target := range sealTargets(e.Meta.A) {
				if addAnchorTarget(ctx, s, b, target) {
					b.addEdge(e.Meta.D, target, EdgeAnchor)
				}
			}
		}
	}
	return nil
}

func addTel(ctx context.Context, s *store.Store, b *builder, ri string) error {
	events, err := s.ListTel(ctx, ri)
	if err != nil {
		return err
	}

	b.addNode(NodeTELRegistry, ri)
	for _, e := range events {
		if e.Meta.T != "vcp" {
			continue
		}
		if parentRaw, ok := e.KED.GetPath("e.parent.n"); ok {
			if parentSaid, ok := parentRaw.(string); ok && parentSaid != "" {
				b.addNode(NodeTELRegistry, parentSaid)
				b.addEdge(ri, parentSaid, EdgeParentRegistry)
			}
		}
		break
	}

	for _, e := range events {
		switch e.Meta.T {
		case "iss":
			if b.addNode(NodeTELEvent, e.Meta.D) {
				addAcdcRef(ctx, s, b, e.Meta.I)
				b.addEdge(e.Meta.D, e.Meta.I, EdgeIssues)
			}
		case "rev":
			if b.addNode(NodeTELEvent, e.Meta.D) {
				addAcdcRef(ctx, s, b, e.Meta.I)
				b.addEdge(e.Meta.D, e.Meta.I, EdgeRevokes)
			}
		case "ixn":
			if !b.addNode(NodeTELEvent, e.Meta.D) {
				continue
			}
			for _, target := range sealTargets(e.Meta.A) {
				if addAnchorTarget(ctx, s, b, target) {
					b.addEdge(e.Meta.D, target, EdgeAnchor)
				}
			}
		}
	}
	return nil
}

// addAnchorTarget resolves a seal target's kind by fetching it from the
// store (a KEL ixn may anchor a TEL registry or a specific TEL event); it
// only adds the node (and lets the caller add the edge) when the target
// actually resolves, so ANCHOR edges never dangle.
func addAnchorTarget(ctx context.Context, s *store.Store, b *builder, said string) bool {
	p, err := s.GetEvent(ctx, said)
	if err != nil {
		return false
	}
	switch {
	case p.Meta.T == "vcp":
		return b.addNode(NodeTELRegistry, said)
	case p.Meta.Kind == parser.KindTEL:
		return b.addNode(NodeTELEvent, said)
	default:
		return false
	}
}

// addAcdcRef adds an ACDC node for acdcSaid when its content has been
// stored, plus its SCHEMA_OF and HOLDER_OF edges. iss/rev events reference
// credentials by SAID only; the credential body itself is optional.
func addAcdcRef(ctx context.Context, s *store.Store, b *builder, acdcSaid string) {
	raw, err := s.GetACDC(ctx, acdcSaid)
	if err != nil {
		return
	}
	ked := ordered.New()
	if err := ked.UnmarshalJSON(raw); err != nil {
		return
	}
	if !b.addNode(NodeACDC, acdcSaid) {
		return
	}
	if schemaRaw, ok := ked.Get("s"); ok {
		if schemaSaid, ok := schemaRaw.(string); ok && schemaSaid != "" {
			b.addNode(NodeSchema, schemaSaid)
			b.addEdge(acdcSaid, schemaSaid, EdgeSchemaOf)
		}
	}
	if subjRaw, ok := ked.Get("a"); ok {
		if subject, ok := subjRaw.(*ordered.Map); ok {
			if holderRaw, ok := subject.Get("i"); ok {
				if holder, ok := holderRaw.(string); ok && holder != "" {
					b.addNode(NodeAID, holder)
					b.addEdge(holder, acdcSaid, EdgeHolderOf)
				}
			}
		}
	}
}

// sealTargets extracts the anchored SAID from each entry of a KEL/TEL
// ixn's "a" seals array: the core's seal form is {i, d}, with i==d for a
// self-addressing vcp; {registryAnchor, childRegistry} is accepted too,
// per the alternate payload form.
func sealTargets(a []any) []string {
	var out []string
	for _, item := range a {
		m, ok := item.(*ordered.Map)
		if !ok {
			continue
		}
		if d, ok := m.Get("d"); ok {
			if s, ok := d.(string); ok && s != "" {
				out = append(out, s)
				continue
			}
		}
		if cr, ok := m.Get("childRegistry"); ok {
			if s, ok := cr.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
