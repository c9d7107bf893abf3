package store

import (
	"context"
	"testing"

	"github.com/datatrails/go-datatrails-keri/keri"
	"github.com/datatrails/go-datatrails-keri/parser"
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

func TestPutAndListKel(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV())

	signer, err := xcrypto.NewSigner(seed(0x30), true)
	require.NoError(t, err)
	icp, err := keri.Incept(keri.InceptArgs{Keys: []string{signer.Verfer().Qb64}, Isith: keri.NewNumericTholder(1)})
	require.NoError(t, err)

	_, err = s.PutEvent(ctx, icp.Raw)
	require.NoError(t, err)

	events, err := s.ListKel(ctx, signer.Verfer().Qb64)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, parser.KindKEL, events[0].Meta.Kind)

	head, ok, err := s.KelHead(ctx, signer.Verfer().Qb64)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, icp.Said, head)
}

func TestGetByPrior(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV())

	signer, err := xcrypto.NewSigner(seed(0x31), true)
	require.NoError(t, err)
	next, err := xcrypto.NewSigner(seed(0x32), true)
	require.NoError(t, err)
	dig, err := xcrypto.DigerString(next.Verfer().Qb64, "")
	require.NoError(t, err)

	icp, err := keri.Incept(keri.InceptArgs{
		Keys: []string{signer.Verfer().Qb64}, NextDigs: []string{dig},
		Isith: keri.NewNumericTholder(1), Nsith: keri.NewNumericTholder(1),
	})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, icp.Raw)
	require.NoError(t, err)

	rot, err := keri.Rotate(keri.RotateArgs{
		Pre: icp.Said, Keys: []string{next.Verfer().Qb64}, PriorDig: icp.Said, Sn: 1,
		Isith: keri.NewNumericTholder(1), PriorNext: []string{dig},
	})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, rot.Raw)
	require.NoError(t, err)

	successor, ok, err := s.GetByPrior(ctx, icp.Said)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rot.Said, successor)
}

func TestAliasBijection(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV())

	require.NoError(t, s.PutAlias(ctx, ScopeKEL, "alice", "aidABC"))

	id, ok, err := s.GetIDByAlias(ctx, ScopeKEL, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "aidABC", id)

	alias, ok, err := s.GetAliasByID(ctx, ScopeKEL, "aidABC")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice", alias)

	err = s.PutAlias(ctx, ScopeKEL, "alice", "aidXYZ")
	require.ErrorIs(t, err, ErrAliasConflict)
}

func TestListAllEventsForReindex(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV())
	signer, err := xcrypto.NewSigner(seed(0x33), true)
	require.NoError(t, err)
	icp, err := keri.Incept(keri.InceptArgs{Keys: []string{signer.Verfer().Qb64}, Isith: keri.NewNumericTholder(1)})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, icp.Raw)
	require.NoError(t, err)

	all, err := s.ListAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestBinaryEncodingRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(newMemKV(), WithDefaultEncoding(EncodingBinary))

	signer, err := xcrypto.NewSigner(seed(0x34), true)
	require.NoError(t, err)
	icp, err := keri.Incept(keri.InceptArgs{Keys: []string{signer.Verfer().Qb64}, Isith: keri.NewNumericTholder(1)})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, icp.Raw)
	require.NoError(t, err)

	got, err := s.GetEvent(ctx, icp.Said)
	require.NoError(t, err)
	require.Equal(t, icp.Said, got.Meta.D)

	all, err := s.ListAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, icp.Said, all[0].Meta.D)
}
