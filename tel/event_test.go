package tel

import (
	"strings"
	"testing"

	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/datatrails/go-datatrails-keri/said"
	"github.com/stretchr/testify/require"
)

func TestRegistryInceptSelfAddressing(t *testing.T) {
	ev, err := RegistryIncept(RegistryInceptArgs{Issuer: "issuerAID"})
	require.NoError(t, err)

	iVal, ok := ev.KED.Get("i")
	require.True(t, ok)
	require.Equal(t, ev.Said, iVal)

	ok2, err := said.VerifyEventSaid(ev.KED, "d")
	require.NoError(t, err)
	require.True(t, ok2)
}

func TestRegistryInceptWithParent(t *testing.T) {
	parent, err := RegistryIncept(RegistryInceptArgs{Issuer: "issuerAID"})
	require.NoError(t, err)

	child, err := RegistryIncept(RegistryInceptArgs{Issuer: "issuerAID", Parent: parent.Said})
	require.NoError(t, err)

	n, ok := child.KED.GetPath("e.parent.n")
	require.True(t, ok)
	require.Equal(t, parent.Said, n)
}

func TestIssueAndRevoke(t *testing.T) {
	reg, err := RegistryIncept(RegistryInceptArgs{Issuer: "issuerAID"})
	require.NoError(t, err)

	iss, err := Issue(IssueArgs{Vcdig: "credSaid", Regk: reg.Said})
	require.NoError(t, err)
	ok, err := said.VerifyEventSaid(iss.KED, "d")
	require.NoError(t, err)
	require.True(t, ok)

	rev, err := Revoke(RevokeArgs{Vcdig: "credSaid", Regk: reg.Said, Dig: iss.Said})
	require.NoError(t, err)
	ok, err = said.VerifyEventSaid(rev.KED, "d")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInteractAnchorsChildRegistry(t *testing.T) {
	parent, err := RegistryIncept(RegistryInceptArgs{Issuer: "issuerAID"})
	require.NoError(t, err)
	child, err := RegistryIncept(RegistryInceptArgs{Issuer: "issuerAID", Parent: parent.Said})
	require.NoError(t, err)

	ixn, err := Interact(InteractArgs{
		Regk:          parent.Said,
		Sn:            1,
		PriorDig:      parent.Said,
		ChildRegistry: child.Said,
		ChildVcpSaid:  child.Said,
	})
	require.NoError(t, err)
	ok, err := said.VerifyEventSaid(ixn.KED, "d")
	require.NoError(t, err)
	require.True(t, ok)

	// The seal must be an ordered {i, d} object, not a plain map (which
	// encoding/json would serialize with keys sorted alphabetically,
	// producing {d, i} instead of the documented wire shape).
	aVal, ok := ixn.KED.Get("a")
	require.True(t, ok)
	anchors, ok := aVal.([]any)
	require.True(t, ok)
	require.Len(t, anchors, 1)
	seal, ok := anchors[0].(*ordered.Map)
	require.True(t, ok, "seal must be an *ordered.Map, not a plain map")
	require.Equal(t, []string{"i", "d"}, seal.Keys())
	sealJSON, err := seal.MarshalJSON()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(sealJSON), `{"i":`), "seal must serialize i before d, got %s", sealJSON)
}
