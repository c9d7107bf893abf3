package store

import (
	"context"
	"strings"
	"sync"

	"github.com/datatrails/go-datatrails-keri/store/kv"
)

// memKV is a minimal in-memory kv.KV used only to exercise Store's key
// layout in tests; it is not the core's memory-backing adaptor (that
// remains an external collaborator).
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return v, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) List(_ context.Context, prefix string, opts kv.ListOptions) ([]kv.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []kv.Entry
	for k, v := range m.data {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		e := kv.Entry{Key: k}
		if !opts.KeysOnly {
			e.Value = v
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (m *memKV) Batch(ctx context.Context, ops []kv.Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		switch op.Kind {
		case kv.OpPut:
			m.data[op.Key] = op.Value
		case kv.OpDel:
			delete(m.data, op.Key)
		}
	}
	return nil
}
