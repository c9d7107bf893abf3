package store

import "context"

// PutACDC stores a credential by its outer SAID.
func (s *Store) PutACDC(ctx context.Context, said string, raw []byte) error {
	return s.kv.Put(ctx, acdcKey(said), raw)
}

// GetACDC fetches a credential by its outer SAID.
func (s *Store) GetACDC(ctx context.Context, said string) ([]byte, error) {
	v, err := s.kv.Get(ctx, acdcKey(said))
	if err != nil {
		return nil, ErrNotFound
	}
	return v, nil
}

// PutSchema stores a JSON Schema document by its "$id" SAID.
func (s *Store) PutSchema(ctx context.Context, said string, raw []byte) error {
	return s.kv.Put(ctx, schemaKey(said), raw)
}

// GetSchema fetches a schema document by its SAID.
func (s *Store) GetSchema(ctx context.Context, said string) ([]byte, error) {
	v, err := s.kv.Get(ctx, schemaKey(said))
	if err != nil {
		return nil, ErrNotFound
	}
	return v, nil
}
