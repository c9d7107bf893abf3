package xcrypto

import (
	"crypto/sha256"

	"github.com/datatrails/go-datatrails-keri/cesr"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// DefaultDigestCode is the digest used for SAIDs unless the caller
// overrides it; Blake3-256 is required by the core.
const DefaultDigestCode = cesr.CodeBlake3_256

func sumFor(code string, data []byte) ([]byte, error) {
	switch code {
	case cesr.CodeBlake3_256:
		sum := blake3.Sum256(data)
		return sum[:], nil
	case cesr.CodeBlake2b256:
		sum := blake2b.Sum256(data)
		return sum[:], nil
	case cesr.CodeBlake2s256:
		sum := blake2s.Sum256(data)
		return sum[:], nil
	case cesr.CodeSHA3_256:
		sum := sha3.Sum256(data)
		return sum[:], nil
	case cesr.CodeSHA2_256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	default:
		return nil, ErrUnsupportedDigestCode
	}
}

// Diger computes the qb64-encoded digest of data under code, defaulting to
// Blake3-256 when code is empty.
func Diger(data []byte, code string) (string, error) {
	if code == "" {
		code = DefaultDigestCode
	}
	sum, err := sumFor(code, data)
	if err != nil {
		return "", err
	}
	return cesr.Encode(sum, code)
}

// DigerString is a convenience wrapper over Diger for string input.
func DigerString(s string, code string) (string, error) {
	return Diger([]byte(s), code)
}

// FullSize returns the qb64 length produced by a digest (or any fixed-size)
// code, used by SAID placeholder computation.
func FullSize(code string) (int, error) {
	s, err := cesr.Lookup(code)
	if err != nil {
		return 0, err
	}
	return s.FS, nil
}
