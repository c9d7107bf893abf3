package replay

import (
	"testing"

	"github.com/datatrails/go-datatrails-keri/attach"
	"github.com/datatrails/go-datatrails-keri/keri"
	"github.com/datatrails/go-datatrails-keri/ordered"
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

func signEvent(t *testing.T, signer *xcrypto.Signer, idx int, raw []byte) []byte {
	t.Helper()
	cigar, err := signer.Sign(raw)
	require.NoError(t, err)
	group, err := attach.BuildGroup([]attach.IndexedSig{{Index: idx, Cigar: cigar}})
	require.NoError(t, err)
	return attach.SignedStream(raw, group)
}

func TestVerifyKelChainSingleKey(t *testing.T) {
	s1, err := xcrypto.NewSigner(seed(0x10), true)
	require.NoError(t, err)
	s2, err := xcrypto.NewSigner(seed(0x11), true)
	require.NoError(t, err)
	digS2, err := xcrypto.DigerString(s2.Verfer().Qb64, "")
	require.NoError(t, err)

	icp, err := keri.Incept(keri.InceptArgs{
		Keys:     []string{s1.Verfer().Qb64},
		NextDigs: []string{digS2},
		Isith:    keri.NewNumericTholder(1),
		Nsith:    keri.NewNumericTholder(1),
	})
	require.NoError(t, err)

	rot, err := keri.Rotate(keri.RotateArgs{
		Pre:       icp.Said,
		Keys:      []string{s2.Verfer().Qb64},
		PriorDig:  icp.Said,
		Sn:        1,
		Isith:     keri.NewNumericTholder(1),
		PriorNext: []string{digS2},
	})
	require.NoError(t, err)

	events := []SignedKelEvent{
		{KED: icp.KED, SignedBytes: signEvent(t, s1, 0, icp.Raw)},
		// A rotation is authorized by the PRIOR (pre-rotation) keys, not
		// the new keys it introduces.
		{KED: rot.KED, SignedBytes: signEvent(t, s1, 0, rot.Raw)},
	}

	valid, failed, err := VerifyKelChain(events)
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, -1, failed)
}

func TestVerifyKelChainDetectsBadSignature(t *testing.T) {
	s1, err := xcrypto.NewSigner(seed(0x12), true)
	require.NoError(t, err)
	wrong, err := xcrypto.NewSigner(seed(0x13), true)
	require.NoError(t, err)

	icp, err := keri.Incept(keri.InceptArgs{
		Keys:  []string{s1.Verfer().Qb64},
		Isith: keri.NewNumericTholder(1),
	})
	require.NoError(t, err)

	events := []SignedKelEvent{
		{KED: icp.KED, SignedBytes: signEvent(t, wrong, 0, icp.Raw)},
	}

	valid, failed, err := VerifyKelChain(events)
	require.Error(t, err)
	require.False(t, valid)
	require.Equal(t, 0, failed)
}

func TestFoldEventRejectsRotationOfNonTransferableAID(t *testing.T) {
	s1, err := xcrypto.NewSigner(seed(0x14), true)
	require.NoError(t, err)
	s2, err := xcrypto.NewSigner(seed(0x15), true)
	require.NoError(t, err)

	icp, err := keri.Incept(keri.InceptArgs{
		Keys:  []string{s1.Verfer().Qb64},
		Isith: keri.NewNumericTholder(1),
	})
	require.NoError(t, err)

	state, err := FoldEvent(nil, icp.KED)
	require.NoError(t, err)
	require.Empty(t, state.NextDigests)

	rot, err := keri.Rotate(keri.RotateArgs{
		Pre:      icp.Said,
		Keys:     []string{s2.Verfer().Qb64},
		PriorDig: icp.Said,
		Sn:       1,
		Isith:    keri.NewNumericTholder(1),
	})
	require.NoError(t, err)

	_, err = FoldEvent(state, rot.KED)
	require.ErrorIs(t, err, ErrRotationKeyNotCommitted)
}

func TestReplayCredentialStatus(t *testing.T) {
	iss := ordered.New()
	iss.Set("t", "iss")
	iss.Set("i", "credSaid")
	iss.Set("s", "0")

	rev := ordered.New()
	rev.Set("t", "rev")
	rev.Set("i", "credSaid")
	rev.Set("s", "1")

	status := ReplayCredentialStatus([]*ordered.Map{iss, rev}, "credSaid")
	require.Equal(t, StatusRevoked, status)

	onlyIssued := ReplayCredentialStatus([]*ordered.Map{iss}, "credSaid")
	require.Equal(t, StatusIssued, onlyIssued)

	notFound := ReplayCredentialStatus([]*ordered.Map{iss}, "otherSaid")
	require.Equal(t, StatusNotFound, notFound)
}
