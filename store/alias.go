package store

import (
	"context"

	"github.com/datatrails/go-datatrails-keri/store/kv"
)

// Scopes partition aliases so the same human-readable name can be reused
// across different kinds of addressed object.
const (
	ScopeKEL     = "kel"
	ScopeTEL     = "tel"
	ScopeSchema  = "schema"
	ScopeACDC    = "acdc"
	ScopeContact = "contact"
	ScopeRemotes = "remotes"
)

// PutAlias writes the forward and reverse alias entries for scope in one
// batch. A pre-existing alias in the same scope is rejected: aliases are a
// bijection per scope (§8 property 9).
func (s *Store) PutAlias(ctx context.Context, scope, alias, id string) error {
	if existing, ok, _ := s.GetIDByAlias(ctx, scope, alias); ok && existing != id {
		return ErrAliasConflict
	}
	ops := []kv.Op{
		{Kind: kv.OpPut, Key: alias2idKey(scope, alias), Value: []byte(id)},
		{Kind: kv.OpPut, Key: id2aliasKey(scope, id), Value: []byte(alias)},
	}
	return s.kv.Batch(ctx, ops)
}

// DeleteAlias removes both entries of an alias pair.
func (s *Store) DeleteAlias(ctx context.Context, scope, alias string) error {
	id, ok, err := s.GetIDByAlias(ctx, scope, alias)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	ops := []kv.Op{
		{Kind: kv.OpDel, Key: alias2idKey(scope, alias)},
		{Kind: kv.OpDel, Key: id2aliasKey(scope, id)},
	}
	return s.kv.Batch(ctx, ops)
}

// GetIDByAlias resolves alias -> said/aid within scope.
func (s *Store) GetIDByAlias(ctx context.Context, scope, alias string) (string, bool, error) {
	v, err := s.kv.Get(ctx, alias2idKey(scope, alias))
	if err != nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// GetAliasByID resolves said/aid -> alias within scope.
func (s *Store) GetAliasByID(ctx context.Context, scope, id string) (string, bool, error) {
	v, err := s.kv.Get(ctx, id2aliasKey(scope, id))
	if err != nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// ListAliases enumerates the forward alias map of scope.
func (s *Store) ListAliases(ctx context.Context, scope string) (map[string]string, error) {
	entries, err := s.kv.List(ctx, alias2idPrefix(scope), kv.ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	prefix := alias2idPrefix(scope)
	for _, e := range entries {
		alias := e.Key[len(prefix):]
		out[alias] = string(e.Value)
	}
	return out, nil
}
