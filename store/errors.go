// Package store implements the KV key layout the core is built on: raw
// event bytes, parsed metadata, sequence and prior indices, HEAD pointers,
// alias scopes, and content-addressed ACDC/schema storage.
package store

import "errors"

var (
	ErrNotFound      = errors.New("store: alias or said not found")
	ErrAliasConflict = errors.New("store: alias already bound in this scope")
	ErrMalformedEvent = errors.New("store: event bytes failed to parse")
)
