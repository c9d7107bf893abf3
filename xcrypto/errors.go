// Package xcrypto wraps the digest and Ed25519 signing primitives the core
// needs behind CESR-qualified encodings: Diger produces a qb64 digest under
// a chosen code, Signer/Verfer produce and check qb64 keys and signatures.
package xcrypto

import "errors"

var (
	ErrUnsupportedDigestCode = errors.New("xcrypto: unsupported digest derivation code")
	ErrNotTransferable       = errors.New("xcrypto: signer is non-transferable")
	ErrInvalidSeedSize       = errors.New("xcrypto: seed must be exactly 32 bytes")
)
