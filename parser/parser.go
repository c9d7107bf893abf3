package parser

import (
	"bytes"
	"encoding/json"

	"github.com/datatrails/go-datatrails-keri/attach"
	"github.com/datatrails/go-datatrails-keri/ordered"
)

// Kind classifies a parsed event for indexing purposes.
type Kind int

const (
	KindUnknown Kind = iota
	KindKEL
	KindTEL
)

// kelTypes and telTypes mirror §4.7's event-kind classification. "ixn" is
// ambiguous between the two logs; Meta.Kind resolves it by the presence of
// "ri" (a TEL-only field).
var kelTypes = map[string]bool{"icp": true, "rot": true, "drt": true, "dip": true, "ixn": true}
var telTypes = map[string]bool{"vcp": true, "iss": true, "rev": true, "ixn": true}

// Meta is the projected metadata view of a parsed event, used by the store
// and indexer without needing to re-decode the full KED.
type Meta struct {
	T    string
	D    string
	I    string
	S    string
	P    string
	Ri   string
	Ii   string
	K    []string
	N    []string
	Kt   any
	Nt   any
	A    []any
	Dt   string
	Kind Kind
}

// Parsed is the result of splitting and classifying one raw CESR stream.
type Parsed struct {
	Stored      []byte // the exact event JSON bytes (body, no attachments)
	KED         *ordered.Map
	Meta        Meta
	Attachments []byte // the raw "-AAD..." group, nil if absent
}

// Parse strips the leading "-" version-string framing marker if present,
// locates the JSON object, parses it, splits off any trailing attachment
// group, and classifies the event kind.
func Parse(rawCesr []byte) (Parsed, error) {
	data := rawCesr
	if len(data) > 0 && data[0] == '-' {
		data = data[1:]
	}

	event, attachments := attach.ParseCesrStream(data)

	start := bytes.IndexByte(event, '{')
	if start < 0 {
		return Parsed{}, ErrNoJSONStart
	}
	body := event[start:]

	ked := ordered.New()
	if err := json.Unmarshal(body, ked); err != nil {
		return Parsed{}, ErrMalformedEvent
	}

	meta := buildMeta(ked)

	return Parsed{
		Stored:      body,
		KED:         ked,
		Meta:        meta,
		Attachments: attachments,
	}, nil
}

func buildMeta(ked *ordered.Map) Meta {
	getStr := func(k string) string {
		v, ok := ked.Get(k)
		if !ok {
			return ""
		}
		s, _ := v.(string)
		return s
	}
	getStrSlice := func(k string) []string {
		v, ok := ked.Get(k)
		if !ok {
			return nil
		}
		arr, ok := v.([]any)
		if !ok {
			return nil
		}
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	getAny := func(k string) any {
		v, _ := ked.Get(k)
		return v
	}
	getAnySlice := func(k string) []any {
		v, ok := ked.Get(k)
		if !ok {
			return nil
		}
		arr, _ := v.([]any)
		return arr
	}

	t := getStr("t")
	ri := getStr("ri")

	kind := KindUnknown
	switch {
	case t == "ixn" && ri != "":
		kind = KindTEL
	case t == "ixn":
		kind = KindKEL
	case kelTypes[t] && !telTypes[t]:
		kind = KindKEL
	case telTypes[t] && !kelTypes[t]:
		kind = KindTEL
	}

	return Meta{
		T: t, D: getStr("d"), I: getStr("i"), S: getStr("s"), P: getStr("p"),
		Ri: ri, Ii: getStr("ii"),
		K: getStrSlice("k"), N: getStrSlice("n"),
		Kt: getAny("kt"), Nt: getAny("nt"),
		A: getAnySlice("a"), Dt: getStr("dt"),
		Kind: kind,
	}
}
