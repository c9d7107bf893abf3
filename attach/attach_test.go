package attach

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/xcrypto"
	"github.com/stretchr/testify/require"
)

func seed(b byte) []byte {
	s := make([]byte, 32)
	for i := range s {
		s[i] = b
	}
	return s
}

func TestIndexEncodeDecodeRoundTrip(t *testing.T) {
	for _, idx := range []int{0, 1, 25, 26, 27, 51, 52, 63} {
		code, err := encodeIndex(idx)
		require.NoError(t, err)
		got, width, err := decodeIndex(code)
		require.NoError(t, err)
		require.Equal(t, idx, got)
		require.Equal(t, len(code), width)
	}
}

func TestBuildAndParseGroup(t *testing.T) {
	s1, err := xcrypto.NewSigner(seed(0x01), true)
	require.NoError(t, err)
	s2, err := xcrypto.NewSigner(seed(0x02), true)
	require.NoError(t, err)

	msg := []byte(`{"t":"icp"}`)
	c1, err := s1.Sign(msg)
	require.NoError(t, err)
	c2, err := s2.Sign(msg)
	require.NoError(t, err)

	group, err := BuildGroup([]IndexedSig{{Index: 0, Cigar: c1}, {Index: 1, Cigar: c2}})
	require.NoError(t, err)
	require.True(t, len(group) > len(GroupTag))

	stream := SignedStream(msg, group)

	event, sigGroup := ParseCesrStream(stream)
	require.Equal(t, msg, event)
	require.NotNil(t, sigGroup)

	sigs, err := ParseIndexedSignatures(sigGroup)
	require.NoError(t, err)
	require.Len(t, sigs, 2)
	require.Equal(t, 0, sigs[0].Index)
	require.Equal(t, 1, sigs[1].Index)
}

func TestVerifyEventThreshold(t *testing.T) {
	s1, _ := xcrypto.NewSigner(seed(0x03), true)
	s2, _ := xcrypto.NewSigner(seed(0x04), true)
	msg := []byte(`{"t":"rot"}`)
	c1, _ := s1.Sign(msg)
	c2, _ := s2.Sign(msg)

	group, err := BuildGroup([]IndexedSig{{Index: 0, Cigar: c1}, {Index: 1, Cigar: c2}})
	require.NoError(t, err)
	stream := SignedStream(msg, group)

	keys := []xcrypto.Verfer{s1.Verfer(), s2.Verfer()}
	result := VerifyEvent(stream, keys, 2)
	require.True(t, result.Valid)
	require.Equal(t, 2, result.VerifiedCount)
	require.Empty(t, result.Errors)
}

func TestVerifyEventDetectsTamperedSignature(t *testing.T) {
	s1, _ := xcrypto.NewSigner(seed(0x05), true)
	msg := []byte(`{"t":"ixn"}`)
	c1, _ := s1.Sign(msg)

	group, err := BuildGroup([]IndexedSig{{Index: 0, Cigar: c1}})
	require.NoError(t, err)
	stream := SignedStream([]byte(`{"t":"tampered"}`), group)

	keys := []xcrypto.Verfer{s1.Verfer()}
	result := VerifyEvent(stream, keys, 1)
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
}
