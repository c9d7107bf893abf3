package acdc

import (
	"encoding/json"
	"testing"

	"github.com/datatrails/go-datatrails-keri/ordered"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	attrs := ordered.New()
	attrs.Set("score", float64(42))

	cred, err := Issue(IssueArgs{
		Issuer:     "EIssuerAID000000000000000000000000000000000",
		Registry:   "ERegistrySaid0000000000000000000000000000000",
		SchemaSaid: "ESchemaSaid00000000000000000000000000000000",
		Holder:     "EHolderAID0000000000000000000000000000000000",
		Attributes: attrs,
		Edges: []Edge{
			{Name: "parent", Said: "EParentSaid0000000000000000000000000000000"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, cred.Said)

	ok, err := Verify(cred.KED)
	require.NoError(t, err)
	require.True(t, ok)

	// round-trip through JSON, as a stored credential would be loaded.
	var reloaded ordered.Map
	require.NoError(t, json.Unmarshal(cred.Raw, &reloaded))
	ok, err = Verify(&reloaded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyDetectsTamperedAttribute(t *testing.T) {
	cred, err := Issue(IssueArgs{
		Issuer:     "EIssuerAID000000000000000000000000000000000",
		SchemaSaid: "ESchemaSaid00000000000000000000000000000000",
		Holder:     "EHolderAID0000000000000000000000000000000000",
	})
	require.NoError(t, err)

	var reloaded ordered.Map
	require.NoError(t, json.Unmarshal(cred.Raw, &reloaded))
	subjRaw, _ := reloaded.Get("a")
	subject := subjRaw.(*ordered.Map)
	subject.Set("i", "ETamperedHolderAID00000000000000000000000000")

	ok, err := Verify(&reloaded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIssueRequiresIssuerAndSchema(t *testing.T) {
	_, err := Issue(IssueArgs{SchemaSaid: "ESchema"})
	require.ErrorIs(t, err, ErrNoIssuer)

	_, err = Issue(IssueArgs{Issuer: "EIssuer"})
	require.ErrorIs(t, err, ErrNoSchema)
}
