package cesr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	type tc struct {
		name string
		code string
		raw  []byte
	}
	cases := []tc{
		{"seed", CodeEd25519Seed, bytes.Repeat([]byte{0x01}, 32)},
		{"verfer-nontrans", CodeEd25519NonTransferable, bytes.Repeat([]byte{0xAB}, 32)},
		{"verfer-trans", CodeEd25519Transferable, bytes.Repeat([]byte{0x00}, 32)},
		{"blake3", CodeBlake3_256, bytes.Repeat([]byte{0xFF}, 32)},
		{"blake2b", CodeBlake2b256, bytes.Repeat([]byte{0x42}, 32)},
		{"sig", CodeEd25519Sig, bytes.Repeat([]byte{0x07}, 64)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			qb64, err := Encode(c.raw, c.code)
			require.NoError(t, err)

			code, raw, _, err := Decode(qb64)
			require.NoError(t, err)
			require.Equal(t, c.code, code)
			require.Equal(t, c.raw, raw)
		})
	}
}

func TestFullSizeMatchesSpec(t *testing.T) {
	qb64, err := Encode(bytes.Repeat([]byte{0x01}, 32), CodeBlake3_256)
	require.NoError(t, err)
	require.Len(t, qb64, 44)

	qb64, err = Encode(bytes.Repeat([]byte{0x01}, 64), CodeEd25519Sig)
	require.NoError(t, err)
	require.Len(t, qb64, 88)
}

func TestQb2Bijection(t *testing.T) {
	raw := bytes.Repeat([]byte{0x09}, 32)
	qb64, err := Encode(raw, CodeBlake3_256)
	require.NoError(t, err)

	qb2, err := ToQb2(qb64)
	require.NoError(t, err)

	back, err := FromQb2(qb2)
	require.NoError(t, err)
	require.Equal(t, qb64, back)
}

func TestVariableCodeRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte{0x5A}, 30) // multiple of 3
	qb64, err := Encode(raw, CodeVarBytes)
	require.NoError(t, err)

	code, got, soft, err := Decode(qb64)
	require.NoError(t, err)
	require.Equal(t, CodeVarBytes, code)
	require.Equal(t, raw, got)
	require.Equal(t, "AAAK", soft) // 10 quadlets
}

func TestDecodeRejectsInvalidFirstChar(t *testing.T) {
	_, _, _, err := Decode("!bad")
	require.ErrorIs(t, err, ErrInvalidFirstChar)
}

func TestDecodeRejectsUnknownCode(t *testing.T) {
	_, _, _, err := Decode("Zxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx")
	require.ErrorIs(t, err, ErrInvalidCode)
}

func TestDecodeRejectsShortMaterial(t *testing.T) {
	_, _, _, err := Decode("E")
	require.ErrorIs(t, err, ErrInsufficientMaterial)
}
