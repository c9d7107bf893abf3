// Package ordered provides an insertion-order-preserving JSON object, the
// canonical serialization primitive SAID computation depends on: Go's
// built-in maps randomize iteration order, but a SAID's digest is only
// stable if every producer and verifier serializes fields in the same
// order the builder assigned them.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Map is a JSON object that remembers the order keys were first set in.
// Re-setting an existing key updates its value without moving it.
type Map struct {
	keys []string
	vals map[string]any
}

// New returns an empty ordered Map.
func New() *Map {
	return &Map{vals: make(map[string]any)}
}

// Set assigns key to value, appending key to the order if it is new.
func (m *Map) Set(key string, value any) *Map {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
	return m
}

// Get returns the value stored at key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Clone performs a shallow-per-level deep copy: nested *Map and []any
// values are cloned recursively so mutating the clone never affects the
// original.
func (m *Map) Clone() *Map {
	if m == nil {
		return New()
	}
	c := New()
	for _, k := range m.keys {
		c.Set(k, cloneValue(m.vals[k]))
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// SetPath assigns value at a dotted path (e.g. "a.d"), creating
// intermediate *Map levels as needed.
func (m *Map) SetPath(path string, value any) error {
	parts := strings.Split(path, ".")
	cur := m
	for i, p := range parts {
		if i == len(parts)-1 {
			cur.Set(p, value)
			return nil
		}
		next, ok := cur.Get(p)
		if !ok {
			nm := New()
			cur.Set(p, nm)
			cur = nm
			continue
		}
		nm, ok := next.(*Map)
		if !ok {
			return fmt.Errorf("ordered: path element %q is not an object", p)
		}
		cur = nm
	}
	return nil
}

// GetPath retrieves the value at a dotted path.
func (m *Map) GetPath(path string) (any, bool) {
	parts := strings.Split(path, ".")
	cur := m
	for i, p := range parts {
		v, ok := cur.Get(p)
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		nm, ok := v.(*Map)
		if !ok {
			return nil, false
		}
		cur = nm
	}
	return nil, false
}

// MarshalJSON writes the object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object while preserving the field order it
// was written in, using json.Decoder's token stream.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("ordered: expected object, got %v", tok)
	}
	*m = *New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ordered: expected string key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		val, err := decodeValue(raw)
		if err != nil {
			return err
		}
		m.Set(key, val)
	}
	_, err = dec.Token() // closing '}'
	return err
}

func decodeValue(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		nm := New()
		if err := nm.UnmarshalJSON(raw); err != nil {
			return nil, err
		}
		return nm, nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, err
		}
		out := make([]any, len(arr))
		for i, e := range arr {
			v, err := decodeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
