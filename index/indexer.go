package index

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/datatrails/go-datatrails-keri/attach"
	"github.com/datatrails/go-datatrails-keri/keri"
	"github.com/datatrails/go-datatrails-keri/parser"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/datatrails/go-datatrails-keri/xcrypto"
)

// Indexer maintains the parallel structured index over a Store. It never
// trusts an event's claimed signer; it resolves the expected keys itself
// by replaying the owning KEL, per the signer-resolution table.
type Indexer struct {
	store *store.Store
	log   logger.Logger
}

// New builds an Indexer over store.
func New(s *store.Store) *Indexer { return &Indexer{store: s} }

// WithLogger attaches a structured logger; nil means no logging.
func (idx *Indexer) WithLogger(log logger.Logger) *Indexer {
	idx.log = log
	return idx
}

// AddKelEvent re-parses raw, resolves its expected signing keys by
// replaying its AID's KEL, re-verifies the attached signatures, and
// appends a KELEntry to xref:kel:<aid>. It returns ErrIntegrityInvalidSig
// (without rolling back any prior store write) if verification fails,
// per the core's fail-fast indexer contract.
func (idx *Indexer) AddKelEvent(ctx context.Context, raw []byte) error {
	parsed, err := parser.Parse(raw)
	if err != nil {
		return ErrIntegrityCorruptedData
	}
	sn, err := strconv.ParseInt(parsed.Meta.S, 16, 64)
	if err != nil {
		return ErrIntegrityCorruptedData
	}

	var keys []string
	var ktRaw any
	switch parsed.Meta.T {
	case "icp", "dip":
		keys = parsed.Meta.K
		ktRaw = parsed.Meta.Kt
	case "rot", "drt":
		events, err := idx.store.ListKel(ctx, parsed.Meta.I)
		if err != nil {
			return err
		}
		est, ok := mostRecentEstablishment(events, int(sn)-1)
		if !ok {
			return ErrUnresolvedSigner
		}
		if err := verifyRotationCommitment(est.Meta.N, parsed.Meta.K); err != nil {
			return err
		}
		// A rotation carries no signing authority of its own: it must be
		// signed by the prior establishment event's keys, the ones that
		// actually committed to it via "n".
		keys = est.Meta.K
		ktRaw = est.Meta.Kt
	case "ixn":
		events, err := idx.store.ListKel(ctx, parsed.Meta.I)
		if err != nil {
			return err
		}
		est, ok := mostRecentEstablishment(events, int(sn)-1)
		if !ok {
			return ErrUnresolvedSigner
		}
		keys = est.Meta.K
		ktRaw = est.Meta.Kt
	default:
		return ErrUnresolvedSigner
	}

	entry, err := idx.verifyAndBuildKELEntry(raw, parsed, int(sn), keys, ktRaw)
	if err != nil {
		return err
	}
	if err := idx.appendKelEntry(ctx, parsed.Meta.I, entry); err != nil {
		return err
	}
	if !entry.Valid {
		if idx.log != nil {
			idx.log.Infof("AddKelEvent: invalid signature on %s %s", parsed.Meta.T, parsed.Meta.D)
		}
		return ErrIntegrityInvalidSig
	}
	return nil
}

// AddTelEvent re-parses raw, resolves its registry's issuer AID's
// establishment keys (vcp carries the issuer directly via "ii"; iss/rev/ixn
// follow "ri" to the registry's vcp), re-verifies signatures, and appends
// a TELEntry to xref:tel:<ri>.
func (idx *Indexer) AddTelEvent(ctx context.Context, raw []byte) error {
	parsed, err := parser.Parse(raw)
	if err != nil {
		return ErrIntegrityCorruptedData
	}

	var issuer string
	var registry string
	if parsed.Meta.T == "vcp" {
		issuer = parsed.Meta.Ii
		registry = parsed.Meta.I
	} else {
		registry = parsed.Meta.Ri
		vcpEvents, err := idx.store.ListTel(ctx, registry)
		if err != nil {
			return err
		}
		found := false
		for _, e := range vcpEvents {
			if e.Meta.T == "vcp" {
				issuer = e.Meta.Ii
				found = true
				break
			}
		}
		if !found {
			return ErrMissingIssuerKEL
		}
	}

	issuerEvents, err := idx.store.ListKel(ctx, issuer)
	if err != nil {
		return err
	}
	est, ok := mostRecentEstablishment(issuerEvents, maxInt)
	if !ok {
		return ErrMissingIssuerKEL
	}

	verfers, err := toVerfers(est.Meta.K)
	if err != nil {
		return err
	}
	threshold, err := keri.ParseTholderValue(est.Meta.Kt)
	if err != nil {
		return err
	}
	result := attach.VerifyEvent(raw, verfers, threshold.Size())
	if threshold.Numeric == nil {
		result.Valid = threshold.Satisfied(len(verfers), result.SignedIndices)
	}

	entry := TELEntry{
		Said: parsed.Meta.D, Type: parsed.Meta.T, Registry: registry,
		PublicKeys: est.Meta.K, VerifiedIndices: sortedIndices(result.SignedIndices), Valid: result.Valid,
	}
	if err := idx.appendTelEntry(ctx, registry, entry); err != nil {
		return err
	}
	if !entry.Valid {
		if idx.log != nil {
			idx.log.Infof("AddTelEvent: invalid signature on %s %s", parsed.Meta.T, parsed.Meta.D)
		}
		return ErrIntegrityInvalidSig
	}
	return nil
}

// Reindex discards and rebuilds the xref:* projection for the named AIDs
// and registries directly from the store's raw event log, the only
// source of truth. It exists for the case where the structured index is
// suspected to have drifted from the raw store (a VerifyIntegrity report
// with an event-mismatch error); Reindex re-derives the projection by
// replaying every raw event through the same verify-then-append path a
// live write takes, rather than trusting whatever is already cached
// under xref:*. As with VerifyIntegrity and ExportState, the caller
// supplies the scope: the core has no "list every AID ever seen"
// primitive.
func (idx *Indexer) Reindex(ctx context.Context, aids []string, registries []string) error {
	for _, aid := range aids {
		if err := idx.store.Backing().Del(ctx, xrefKelKey(aid)); err != nil {
			return err
		}
		events, err := idx.store.ListKel(ctx, aid)
		if err != nil {
			return err
		}
		for _, e := range events {
			if err := idx.AddKelEvent(ctx, signedStreamOf(e)); err != nil && !errors.Is(err, ErrIntegrityInvalidSig) {
				return err
			}
		}
	}
	for _, ri := range registries {
		if err := idx.store.Backing().Del(ctx, xrefTelKey(ri)); err != nil {
			return err
		}
		events, err := idx.store.ListTel(ctx, ri)
		if err != nil {
			return err
		}
		for _, e := range events {
			if err := idx.AddTelEvent(ctx, signedStreamOf(e)); err != nil && !errors.Is(err, ErrIntegrityInvalidSig) {
				return err
			}
		}
	}
	if idx.log != nil {
		idx.log.Infof("Reindex: rebuilt xref index for %d kel scope(s), %d tel scope(s)", len(aids), len(registries))
	}
	return nil
}

// signedStreamOf reassembles the full signed CESR stream (body plus any
// attachment group) from a parsed event, the form AddKelEvent/AddTelEvent
// expect to re-verify signatures against.
func signedStreamOf(p parser.Parsed) []byte {
	if p.Attachments == nil {
		return p.Stored
	}
	return attach.SignedStream(p.Stored, string(p.Attachments))
}

const maxInt = int(^uint(0) >> 1)

// verifyRotationCommitment enforces the pre-rotation commitment invariant:
// every key a rot/drt introduces must be the preimage of one of the prior
// establishment event's committed next-digests.
func verifyRotationCommitment(priorNextDigests []string, newKeys []string) error {
	committed := make(map[string]bool, len(priorNextDigests))
	for _, d := range priorNextDigests {
		committed[d] = true
	}
	for _, k := range newKeys {
		digest, err := xcrypto.DigerString(k, "")
		if err != nil {
			return err
		}
		if !committed[digest] {
			return ErrRotationKeyNotCommitted
		}
	}
	return nil
}

func mostRecentEstablishment(events []parser.Parsed, uptoSn int) (parser.Parsed, bool) {
	var best parser.Parsed
	found := false
	for _, e := range events {
		sn, err := strconv.ParseInt(e.Meta.S, 16, 64)
		if err != nil || int(sn) > uptoSn {
			continue
		}
		if len(e.Meta.K) > 0 {
			best = e
			found = true
		}
	}
	return best, found
}

func toVerfers(keys []string) ([]xcrypto.Verfer, error) {
	out := make([]xcrypto.Verfer, 0, len(keys))
	for _, k := range keys {
		v, err := xcrypto.ParseVerfer(k)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func sortedIndices(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for i, ok := range m {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func (idx *Indexer) verifyAndBuildKELEntry(raw []byte, parsed parser.Parsed, sn int, keys []string, ktRaw any) (KELEntry, error) {
	verfers, err := toVerfers(keys)
	if err != nil {
		return KELEntry{}, err
	}
	threshold, err := keri.ParseTholderValue(ktRaw)
	if err != nil {
		return KELEntry{}, err
	}
	result := attach.VerifyEvent(raw, verfers, threshold.Size())
	if threshold.Numeric == nil {
		result.Valid = threshold.Satisfied(len(verfers), result.SignedIndices)
	}
	return KELEntry{
		Said: parsed.Meta.D, Type: parsed.Meta.T, AID: parsed.Meta.I, Sn: sn,
		PublicKeys: keys, VerifiedIndices: sortedIndices(result.SignedIndices), Valid: result.Valid,
	}, nil
}

func (idx *Indexer) appendKelEntry(ctx context.Context, aid string, entry KELEntry) error {
	entries, err := idx.loadKelEntries(ctx, aid)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return idx.store.Backing().Put(ctx, xrefKelKey(aid), data)
}

func (idx *Indexer) appendTelEntry(ctx context.Context, ri string, entry TELEntry) error {
	entries, err := idx.loadTelEntries(ctx, ri)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return idx.store.Backing().Put(ctx, xrefTelKey(ri), data)
}

func (idx *Indexer) loadKelEntries(ctx context.Context, aid string) ([]KELEntry, error) {
	raw, err := idx.store.Backing().Get(ctx, xrefKelKey(aid))
	if err != nil {
		return nil, nil
	}
	var entries []KELEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrIntegrityCorruptedData
	}
	return entries, nil
}

func (idx *Indexer) loadTelEntries(ctx context.Context, ri string) ([]TELEntry, error) {
	raw, err := idx.store.Backing().Get(ctx, xrefTelKey(ri))
	if err != nil {
		return nil, nil
	}
	var entries []TELEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ErrIntegrityCorruptedData
	}
	return entries, nil
}
