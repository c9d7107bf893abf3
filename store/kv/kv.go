// Package kv defines the abstract byte-addressed key-value store the
// rest of the core is built on: an opaque string-keyed, byte-valued store
// with prefix listing and best-effort batching.
package kv

import "context"

// Entry is one key/value pair returned by List.
type Entry struct {
	Key   string
	Value []byte // nil when ListOptions.KeysOnly is set
}

// ListOptions narrows a List call.
type ListOptions struct {
	KeysOnly bool
	Limit    int // 0 means unbounded
}

// OpKind selects the action of one Batch operation.
type OpKind int

const (
	OpPut OpKind = iota
	OpDel
)

// Op is one write within a Batch call.
type Op struct {
	Kind  OpKind
	Key   string
	Value []byte // ignored for OpDel
}

// KV is the storage abstraction every Store is built over. Implementations
// are expected to be the caller's concern (disk, memory, cloud object
// storage); the core only depends on this interface.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	List(ctx context.Context, prefix string, opts ListOptions) ([]Entry, error)
	// Batch applies ops atomically if the implementation supports it;
	// otherwise best-effort in order. Callers must treat a failure as
	// leaving storage in a possibly-partial state, recoverable by the
	// indexer's verifyIntegrity / reindex.
	Batch(ctx context.Context, ops []Op) error
}
