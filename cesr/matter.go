package cesr

import "encoding/base64"

// strictRawURL rejects encodings whose last partial group has non-zero
// unused low bits — exactly the "midpad bytes must be zero" invariant.
var strictRawURL = base64.RawURLEncoding.Strict()

const b64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var b64Index = func() map[byte]int {
	m := make(map[byte]int, len(b64Alphabet))
	for i := 0; i < len(b64Alphabet); i++ {
		m[b64Alphabet[i]] = i
	}
	return m
}()

func encodeDigits(n, width int) string {
	buf := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		buf[i] = b64Alphabet[n&0x3f]
		n >>= 6
	}
	return string(buf)
}

func decodeDigits(s string) (int, error) {
	n := 0
	for i := 0; i < len(s); i++ {
		v, ok := b64Index[s[i]]
		if !ok {
			return 0, ErrInvalidCode
		}
		n = (n << 6) | v
	}
	return n, nil
}

// Encode produces the fully-qualified qb64 primitive for raw under code.
// The code is prepended to the base64url (no-pad) encoding of the lead
// bytes (if any) followed by raw; codes are only valid for raw lengths
// whose pad size ps = PadSize(len(raw), ls) matches (hs+ss) mod 4.
func Encode(raw []byte, code string) (string, error) {
	s, err := Lookup(code)
	if err != nil {
		return "", err
	}
	ps := PadSize(len(raw), s.LS)
	if (s.HS+s.SS)%4 != ps {
		return "", ErrMisalignedCode
	}

	material := make([]byte, s.LS+len(raw))
	copy(material[s.LS:], raw)
	body := base64.RawURLEncoding.EncodeToString(material)

	if s.Variable() {
		if len(material)%3 != 0 {
			return "", ErrInvalidRawSize
		}
		quadlets := len(material) / 3
		return code + encodeDigits(quadlets, s.SS) + body, nil
	}

	qb64 := code + body
	if s.FS != 0 && len(qb64) != s.FS {
		return "", ErrInvalidRawSize
	}
	return qb64, nil
}

// Decode parses a qb64 primitive, returning its code, raw material (with
// lead bytes stripped), and — for variable codes — the soft-part digit
// string.
func Decode(qb64 string) (code string, raw []byte, soft string, err error) {
	if len(qb64) == 0 {
		return "", nil, "", ErrInsufficientMaterial
	}
	hs, err := HardSize(qb64[0])
	if err != nil {
		return "", nil, "", err
	}
	if len(qb64) < hs {
		return "", nil, "", ErrInsufficientMaterial
	}

	var matched string
	var s Sizage
	for c, sz := range table {
		if len(c) == hs && qb64[:hs] == c {
			matched = c
			s = sz
			break
		}
	}
	if matched == "" {
		return "", nil, "", ErrInvalidCode
	}

	expectedPS := (s.HS + s.SS) % 4

	if s.Variable() {
		if len(qb64) < hs+s.SS {
			return "", nil, "", ErrInsufficientMaterial
		}
		soft = qb64[hs : hs+s.SS]
		quadlets, derr := decodeDigits(soft)
		if derr != nil {
			return "", nil, "", derr
		}
		dataLen := quadlets * 3
		body := qb64[hs+s.SS:]
		material, berr := strictRawURL.DecodeString(body)
		if berr != nil {
			return "", nil, "", ErrNonZeroMidpad
		}
		if len(material) != dataLen {
			return "", nil, "", ErrInvalidRawSize
		}
		if s.LS > len(material) {
			return "", nil, "", ErrInvalidRawSize
		}
		raw = material[s.LS:]
		if expectedPS != 0 {
			return "", nil, "", ErrMisalignedCode
		}
		return matched, raw, soft, nil
	}

	if s.FS != 0 && len(qb64) < s.FS {
		return "", nil, "", ErrInsufficientMaterial
	}
	body := qb64[hs:s.FS]
	material, berr := strictRawURL.DecodeString(body)
	if berr != nil {
		return "", nil, "", ErrNonZeroMidpad
	}
	if s.LS > len(material) {
		return "", nil, "", ErrInvalidRawSize
	}
	raw = material[s.LS:]
	if PadSize(len(raw), s.LS) != expectedPS {
		return "", nil, "", ErrMisalignedCode
	}
	return matched, raw, "", nil
}
