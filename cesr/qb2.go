package cesr

// qb2 is the binary-domain twin of a qb64 primitive: a one-byte code tag
// (its index into codeOrder) followed by the same lead+raw bytes qb64
// encodes. It exists purely so the codec can demonstrate and test the
// qb64<->qb2 bijection property required of the primitive (ToQb2(qb64) and
// FromQb2 are mutual inverses); it is not a wire format in its own right.
var codeOrder = []string{
	CodeEd25519Seed,
	CodeEd25519NonTransferable,
	CodeEd25519Transferable,
	CodeBlake3_256,
	CodeBlake2b256,
	CodeBlake2s256,
	CodeSHA3_256,
	CodeSHA2_256,
	CodeEd25519Sig,
	CodeECDSASigAlt,
	CodeVarBytes,
}

var codeTag = func() map[string]byte {
	m := make(map[string]byte, len(codeOrder))
	for i, c := range codeOrder {
		m[c] = byte(i)
	}
	return m
}()

// ToQb2 converts a qb64 primitive to its qb2 binary form.
func ToQb2(qb64 string) ([]byte, error) {
	code, raw, _, err := Decode(qb64)
	if err != nil {
		return nil, err
	}
	tag, ok := codeTag[code]
	if !ok {
		return nil, ErrInvalidCode
	}
	out := make([]byte, 1+len(raw))
	out[0] = tag
	copy(out[1:], raw)
	return out, nil
}

// FromQb2 reconstructs the qb64 primitive encoded by ToQb2.
func FromQb2(qb2 []byte) (string, error) {
	if len(qb2) == 0 {
		return "", ErrInsufficientMaterial
	}
	tag := qb2[0]
	if int(tag) >= len(codeOrder) {
		return "", ErrInvalidCode
	}
	code := codeOrder[tag]
	return Encode(qb2[1:], code)
}
