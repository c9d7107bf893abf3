package cesr

// Sizage describes the fixed geometry of one derivation code: hard size
// (the code's fixed characters), soft size (count-carrying characters for
// variable length codes), extra pad characters, lead byte count, and the
// full qb64 size when the code is fixed-size (FS==0 for variable codes).
type Sizage struct {
	HS int // hard size, in characters
	SS int // soft size, in characters
	XS int // extra pad characters
	LS int // lead (zero) bytes prepended to raw before encoding
	FS int // full size in characters; 0 for variable-size codes
}

// Variable reports whether the code is a variable-size (soft-counted) code.
func (s Sizage) Variable() bool { return s.FS == 0 }

// Fixed derivation codes used throughout the core. Digest codes are
// single-character so that a 32-byte raw value (ps=1) satisfies the
// hs+ss ≡ ps (mod 4) alignment invariant; the 64-byte signature codes are
// two characters for the same reason (ps=2).
const (
	CodeEd25519Seed            = "A" // Ed25519 seed (private key material)
	CodeEd25519NonTransferable = "B" // Ed25519 non-transferable verification key
	CodeEd25519Transferable    = "D" // Ed25519 transferable verification key
	CodeBlake3_256             = "E" // Blake3-256 digest (the SAID default)
	CodeBlake2b256             = "F" // Blake2b-256 digest
	CodeBlake2s256             = "G" // Blake2s-256 digest
	CodeSHA3_256               = "H" // SHA3-256 digest
	CodeSHA2_256               = "I" // SHA2-256 digest

	CodeEd25519Sig  = "0B" // Ed25519 signature
	CodeECDSASigAlt = "0C" // alternate 88-char signature code, also accepted for Ed25519

	// CodeVarBytes is a variable-length opaque byte code whose soft part
	// carries the quadlet count of the encoded material. Raw material must
	// already be a multiple of 3 bytes. No other package encodes with it;
	// the store keeps attachment shards as raw bytes.
	CodeVarBytes = "4A"
)

var table = map[string]Sizage{
	CodeEd25519Seed:            {HS: 1, SS: 0, FS: 44},
	CodeEd25519NonTransferable: {HS: 1, SS: 0, FS: 44},
	CodeEd25519Transferable:    {HS: 1, SS: 0, FS: 44},
	CodeBlake3_256:             {HS: 1, SS: 0, FS: 44},
	CodeBlake2b256:             {HS: 1, SS: 0, FS: 44},
	CodeBlake2s256:             {HS: 1, SS: 0, FS: 44},
	CodeSHA3_256:               {HS: 1, SS: 0, FS: 44},
	CodeSHA2_256:               {HS: 1, SS: 0, FS: 44},
	CodeEd25519Sig:             {HS: 2, SS: 0, FS: 88},
	CodeECDSASigAlt:            {HS: 2, SS: 0, FS: 88},
	CodeVarBytes:               {HS: 4, SS: 4, FS: 0},
}

// Lookup returns the sizage of a known code.
func Lookup(code string) (Sizage, error) {
	s, ok := table[code]
	if !ok {
		return Sizage{}, ErrInvalidCode
	}
	return s, nil
}

// HardSize returns the hard-size (in characters) selected by a qb64 string's
// first character, per the fixed class map: A-Z/a-z -> 1, '0' -> 2,
// '1','2','3','7','8','9' -> 4, '4','5','6' -> 2.
func HardSize(first byte) (int, error) {
	switch {
	case first >= 'A' && first <= 'Z', first >= 'a' && first <= 'z':
		return 1, nil
	case first == '0':
		return 2, nil
	case first == '1' || first == '2' || first == '3' || first == '7' || first == '8' || first == '9':
		return 4, nil
	case first == '4' || first == '5' || first == '6':
		return 2, nil
	default:
		return 0, ErrInvalidFirstChar
	}
}

// PadSize computes ps = (3 - (rawLen+ls) mod 3) mod 3, the count of zero
// alignment bytes a code of the given raw length and lead-byte count must
// carry for its data segment to be an exact multiple of 3 bytes.
func PadSize(rawLen, ls int) int {
	return (3 - (rawLen+ls)%3) % 3
}
