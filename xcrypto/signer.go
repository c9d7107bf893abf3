package xcrypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/datatrails/go-datatrails-keri/cesr"
)

// Verfer is a CESR-wrapped Ed25519 verification key.
type Verfer struct {
	Qb64          string
	Transferable  bool
	raw           ed25519.PublicKey
}

// Cigar is a CESR-wrapped Ed25519 signature.
type Cigar struct {
	Qb64 string
	raw  []byte
}

// Signer holds a 32-byte Ed25519 seed and exposes the derived Verfer.
type Signer struct {
	seed         []byte
	priv         ed25519.PrivateKey
	transferable bool
	verfer       Verfer
}

// NewSigner derives a Signer from a 32-byte seed. transferable selects the
// verfer's derivation code: "D" (transferable) when true, "B"
// (non-transferable) when false.
func NewSigner(seed []byte, transferable bool) (*Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ErrInvalidSeedSize
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	code := cesr.CodeEd25519NonTransferable
	if transferable {
		code = cesr.CodeEd25519Transferable
	}
	qb64, err := cesr.Encode(pub, code)
	if err != nil {
		return nil, err
	}

	s := &Signer{
		seed:         append([]byte(nil), seed...),
		priv:         priv,
		transferable: transferable,
		verfer: Verfer{
			Qb64:         qb64,
			Transferable: transferable,
			raw:          pub,
		},
	}
	return s, nil
}

// NewRandomSigner generates a fresh Ed25519 seed using a CSPRNG.
func NewRandomSigner(transferable bool) (*Signer, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return NewSigner(seed, transferable)
}

// Verfer returns the signer's public verification key.
func (s *Signer) Verfer() Verfer { return s.verfer }

// SeedQb64 returns the CESR-qualified seed ("A" code).
func (s *Signer) SeedQb64() (string, error) {
	return cesr.Encode(s.seed, cesr.CodeEd25519Seed)
}

// Sign produces a Cigar over bytes.
func (s *Signer) Sign(data []byte) (Cigar, error) {
	sig := ed25519.Sign(s.priv, data)
	qb64, err := cesr.Encode(sig, cesr.CodeEd25519Sig)
	if err != nil {
		return Cigar{}, err
	}
	return Cigar{Qb64: qb64, raw: sig}, nil
}

// ParseVerfer decodes a qb64 verification key.
func ParseVerfer(qb64 string) (Verfer, error) {
	code, raw, _, err := cesr.Decode(qb64)
	if err != nil {
		return Verfer{}, err
	}
	switch code {
	case cesr.CodeEd25519Transferable:
		return Verfer{Qb64: qb64, Transferable: true, raw: raw}, nil
	case cesr.CodeEd25519NonTransferable:
		return Verfer{Qb64: qb64, Transferable: false, raw: raw}, nil
	default:
		return Verfer{}, ErrUnsupportedDigestCode
	}
}

// ParseCigar decodes a qb64 signature; both "0B" and "0C" are accepted as
// 88-character Ed25519 signature encodings.
func ParseCigar(qb64 string) (Cigar, error) {
	code, raw, _, err := cesr.Decode(qb64)
	if err != nil {
		return Cigar{}, err
	}
	if code != cesr.CodeEd25519Sig && code != cesr.CodeECDSASigAlt {
		return Cigar{}, ErrUnsupportedDigestCode
	}
	return Cigar{Qb64: qb64, raw: raw}, nil
}

// Verify reports whether sig is a valid Ed25519 signature over data by this
// verfer. Invalid signatures return false, never an error.
func (v Verfer) Verify(sig Cigar, data []byte) bool {
	if len(v.raw) != ed25519.PublicKeySize || len(sig.raw) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(v.raw, data, sig.raw)
}

// Raw returns the verfer's underlying public key bytes.
func (v Verfer) Raw() []byte { return append([]byte(nil), v.raw...) }
