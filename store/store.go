package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/datatrails/go-datatrails-keri/parser"
	"github.com/datatrails/go-datatrails-keri/store/kv"
)

// Store implements the core's KV key layout over an injected kv.KV
// backing store.
type Store struct {
	kv   kv.KV
	opts Options
}

// New builds a Store over backing, applying any options.
func New(backing kv.KV, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{kv: backing, opts: o}
}

// Backing returns the underlying kv.KV. It exists for the write-time
// indexer, which maintains its own xref:* keys in parallel to the store's
// own layout; other callers should prefer the typed Store methods.
func (s *Store) Backing() kv.KV { return s.kv }

// PutEvent parses raw (full CESR stream, with attachments), and batches the
// writes the core's key layout requires: the raw event, its metadata, the
// sequence/prior indices, and the HEAD pointer for its log.
func (s *Store) PutEvent(ctx context.Context, raw []byte) (parser.Parsed, error) {
	parsed, err := s.opts.Parse(raw)
	if err != nil {
		return parser.Parsed{}, ErrMalformedEvent
	}

	stored, err := encodeStream(s.opts.DefaultEncoding, raw)
	if err != nil {
		return parser.Parsed{}, err
	}
	ops := []kv.Op{
		{Kind: kv.OpPut, Key: evKey(parsed.Meta.D), Value: stored},
	}
	metaBytes, err := json.Marshal(parsed.Meta)
	if err != nil {
		return parser.Parsed{}, err
	}
	ops = append(ops, kv.Op{Kind: kv.OpPut, Key: metaKey(parsed.Meta.D), Value: metaBytes})
	if parsed.Attachments != nil {
		ops = append(ops, kv.Op{Kind: kv.OpPut, Key: attKey(parsed.Meta.D, 0), Value: parsed.Attachments})
	}

	switch parsed.Meta.Kind {
	case parser.KindKEL:
		ops = append(ops,
			kv.Op{Kind: kv.OpPut, Key: kelIdxKey(parsed.Meta.I, parsed.Meta.S), Value: []byte(parsed.Meta.D)},
			kv.Op{Kind: kv.OpPut, Key: kelHeadKey(parsed.Meta.I), Value: []byte(parsed.Meta.D)},
		)
	case parser.KindTEL:
		ri := parsed.Meta.Ri
		if ri == "" {
			ri = parsed.Meta.I // vcp: the registry's own SAID is its ri
		}
		ops = append(ops,
			kv.Op{Kind: kv.OpPut, Key: telIdxKey(ri, parsed.Meta.D), Value: []byte(s.opts.Clock.Now())},
			kv.Op{Kind: kv.OpPut, Key: telHeadKey(ri), Value: []byte(parsed.Meta.D)},
		)
	}

	if parsed.Meta.P != "" {
		ops = append(ops, kv.Op{Kind: kv.OpPut, Key: prevIdxKey(parsed.Meta.P), Value: []byte(parsed.Meta.D)})
	}

	if err := s.kv.Batch(ctx, ops); err != nil {
		return parser.Parsed{}, err
	}
	if s.opts.Log != nil {
		s.opts.Log.Infof("PutEvent: stored %s %s", parsed.Meta.Kind, parsed.Meta.D)
	}
	return parsed, nil
}

// GetEvent fetches and re-parses the raw event stored under said.
func (s *Store) GetEvent(ctx context.Context, said string) (parser.Parsed, error) {
	stored, err := s.kv.Get(ctx, evKey(said))
	if err != nil {
		return parser.Parsed{}, ErrNotFound
	}
	raw, err := decodeStream(s.opts.DefaultEncoding, stored)
	if err != nil {
		return parser.Parsed{}, err
	}
	return s.opts.Parse(raw)
}

// ListKel returns every event for aid in ascending sequence-number order.
func (s *Store) ListKel(ctx context.Context, aid string) ([]parser.Parsed, error) {
	entries, err := s.kv.List(ctx, kelIdxPrefix(aid), kv.ListOptions{})
	if err != nil {
		return nil, err
	}
	type seqd struct {
		sn   int64
		said string
	}
	ordered := make([]seqd, 0, len(entries))
	for _, e := range entries {
		sHex := e.Key[len(kelIdxPrefix(aid)):]
		sn, err := strconv.ParseInt(sHex, 16, 64)
		if err != nil {
			continue
		}
		ordered = append(ordered, seqd{sn, string(e.Value)})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].sn < ordered[j].sn })

	out := make([]parser.Parsed, 0, len(ordered))
	for _, o := range ordered {
		p, err := s.GetEvent(ctx, o.said)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ListTel returns every event for registry ri ordered by the timestamp the
// store's Clock recorded when each was written. Events that share a
// timestamp come back in no defined order.
func (s *Store) ListTel(ctx context.Context, ri string) ([]parser.Parsed, error) {
	entries, err := s.kv.List(ctx, telIdxPrefix(ri), kv.ListOptions{})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return string(entries[i].Value) < string(entries[j].Value) })

	out := make([]parser.Parsed, 0, len(entries))
	for _, e := range entries {
		prefix := telIdxPrefix(ri)
		said := e.Key[len(prefix):]
		p, err := s.GetEvent(ctx, said)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// GetByPrior returns the successor event's SAID chained from priorSaid.
func (s *Store) GetByPrior(ctx context.Context, priorSaid string) (string, bool, error) {
	v, err := s.kv.Get(ctx, prevIdxKey(priorSaid))
	if err != nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// KelHead returns the current HEAD SAID of aid's KEL.
func (s *Store) KelHead(ctx context.Context, aid string) (string, bool, error) {
	v, err := s.kv.Get(ctx, kelHeadKey(aid))
	if err != nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// TelHead returns the current HEAD SAID of ri's TEL.
func (s *Store) TelHead(ctx context.Context, ri string) (string, bool, error) {
	v, err := s.kv.Get(ctx, telHeadKey(ri))
	if err != nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// ListAllEvents walks every event stored under ev/, in the order the
// backing KV lists them. Reindex does not use it; it walks the named
// KELs/TELs through ListKel/ListTel.
func (s *Store) ListAllEvents(ctx context.Context) ([]parser.Parsed, error) {
	entries, err := s.kv.List(ctx, evPrefix, kv.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]parser.Parsed, 0, len(entries))
	for _, e := range entries {
		raw, err := decodeStream(s.opts.DefaultEncoding, e.Value)
		if err != nil {
			return nil, err
		}
		p, err := s.opts.Parse(raw)
		if err != nil {
			return nil, ErrMalformedEvent
		}
		out = append(out, p)
	}
	return out, nil
}
