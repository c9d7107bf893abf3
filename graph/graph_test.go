package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/datatrails/go-datatrails-keri/attach"
	"github.com/datatrails/go-datatrails-keri/keri"
	"github.com/datatrails/go-datatrails-keri/store"
	"github.com/datatrails/go-datatrails-keri/store/kv"
	"github.com/datatrails/go-datatrails-keri/tel"
	"github.com/datatrails/go-datatrails-keri/xcrypto"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return v, nil
}
func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
func (m *memKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
func (m *memKV) List(_ context.Context, prefix string, _ kv.ListOptions) ([]kv.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []kv.Entry
	for k, v := range m.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, kv.Entry{Key: k, Value: v})
		}
	}
	return out, nil
}
func (m *memKV) Batch(_ context.Context, ops []kv.Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		if op.Kind == kv.OpPut {
			m.data[op.Key] = op.Value
		} else {
			delete(m.data, op.Key)
		}
	}
	return nil
}

func seed(b byte) []byte {
	s := make([]byte, 32)
	for i := range s {
		s[i] = b
	}
	return s
}

func signAndWrap(t *testing.T, signer *xcrypto.Signer, raw []byte) []byte {
	t.Helper()
	cigar, err := signer.Sign(raw)
	require.NoError(t, err)
	group, err := attach.BuildGroup([]attach.IndexedSig{{Index: 0, Cigar: cigar}})
	require.NoError(t, err)
	return attach.SignedStream(raw, group)
}

// TestBuildKelTelAcdcGraph exercises S3 from the core's scenario list:
// identity, a registry anchored in its KEL, a credential issued then
// revoked, and asserts the resulting node/edge shape.
func TestBuildKelTelAcdcGraph(t *testing.T) {
	ctx := context.Background()
	s := store.New(newMemKV())

	signer, err := xcrypto.NewSigner(seed(0x50), true)
	require.NoError(t, err)

	icp, err := keri.Incept(keri.InceptArgs{Keys: []string{signer.Verfer().Qb64}, Isith: keri.NewNumericTholder(1)})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, signAndWrap(t, signer, icp.Raw))
	require.NoError(t, err)

	vcp, err := tel.RegistryIncept(tel.RegistryInceptArgs{Issuer: signer.Verfer().Qb64})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, vcp.Raw) // TEL events are unsigned here; only KEL events carry signatures
	require.NoError(t, err)

	anchorSeal := map[string]any{"i": vcp.Said, "d": vcp.Said}
	ixn, err := keri.Interact(keri.InteractArgs{Pre: signer.Verfer().Qb64, Sn: 1, PriorDig: icp.Said, Seals: []any{anchorSeal}})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, signAndWrap(t, signer, ixn.Raw))
	require.NoError(t, err)

	acdcSaid := "EAcdcSaid0000000000000000000000000000000000"

	iss, err := tel.Issue(tel.IssueArgs{Vcdig: acdcSaid, Regk: vcp.Said})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, iss.Raw)
	require.NoError(t, err)

	rev, err := tel.Revoke(tel.RevokeArgs{Vcdig: acdcSaid, Regk: vcp.Said, Dig: iss.Said})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, rev.Raw)
	require.NoError(t, err)

	g, err := Build(ctx, s, BuildArgs{AIDs: []string{signer.Verfer().Qb64}, Registries: []string{vcp.Said}})
	require.NoError(t, err)

	var kinds []NodeKind
	for _, n := range g.Nodes {
		kinds = append(kinds, n.Kind)
	}
	require.Contains(t, kinds, NodeAID)
	require.Contains(t, kinds, NodeKELEvent)
	require.Contains(t, kinds, NodeTELRegistry)
	require.Contains(t, kinds, NodeTELEvent)

	var edgeKinds []EdgeKind
	for _, e := range g.Edges {
		edgeKinds = append(edgeKinds, e.Kind)
	}
	require.Contains(t, edgeKinds, EdgePrior)
	require.Contains(t, edgeKinds, EdgeAnchor)
	require.Contains(t, edgeKinds, EdgeIssues)
	require.Contains(t, edgeKinds, EdgeRevokes)
}

func TestBuildRequiresScope(t *testing.T) {
	s := store.New(newMemKV())
	_, err := Build(context.Background(), s, BuildArgs{})
	require.ErrorIs(t, err, ErrNoScope)
}

func TestBuildNestedRegistryParentEdge(t *testing.T) {
	ctx := context.Background()
	s := store.New(newMemKV())

	signer, err := xcrypto.NewSigner(seed(0x51), true)
	require.NoError(t, err)
	icp, err := keri.Incept(keri.InceptArgs{Keys: []string{signer.Verfer().Qb64}, Isith: keri.NewNumericTholder(1)})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, signAndWrap(t, signer, icp.Raw))
	require.NoError(t, err)

	parentVcp, err := tel.RegistryIncept(tel.RegistryInceptArgs{Issuer: icp.Said})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, parentVcp.Raw)
	require.NoError(t, err)

	childVcp, err := tel.RegistryIncept(tel.RegistryInceptArgs{Issuer: icp.Said, Parent: parentVcp.Said})
	require.NoError(t, err)
	_, err = s.PutEvent(ctx, childVcp.Raw)
	require.NoError(t, err)

	g, err := Build(ctx, s, BuildArgs{Registries: []string{parentVcp.Said, childVcp.Said}})
	require.NoError(t, err)

	found := false
	for _, e := range g.Edges {
		if e.Kind == EdgeParentRegistry && e.From == childVcp.Said && e.To == parentVcp.Said {
			found = true
		}
	}
	require.True(t, found)
}
