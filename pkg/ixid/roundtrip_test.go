package ixid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip_Normalizes(t *testing.T) {
	original := Tracking{
		App:   String("MY App"),
		Label: String(" New_York "),
	}

	got, err := Decode(Encode(original))
	require.NoError(t, err)

	require.Equal(t, "my-app", *got.App)
	require.Equal(t, "new-york", *got.Label)
	require.Nil(t, got.Page)
	require.Nil(t, got.Property)
	require.Nil(t, got.UserID)
}

func TestRoundTrip_EverySchema(t *testing.T) {
	for _, schema := range []Schema{SchemaV1, SchemaV2} {
		original := Tracking{}
		for _, f := range schema.Fields {
			original.Set(f, String(string(f)+" value"))
		}

		got, err := Decode(Encode(original, WithSchema(schema)), WithSchema(schema))
		require.NoError(t, err)
		require.Equal(t, original.Normalized(), got, "schema v%d", schema.Version)
	}
}

func TestRoundTrip_AbsentApp(t *testing.T) {
	got, err := Decode(Encode(Tracking{Page: String("home")}))
	require.NoError(t, err)

	// absent app comes back as a present empty string
	require.Equal(t, Tracking{App: String(""), Page: String("home")}, got)
}

func TestRoundTrip_SeparatorInValueShifts(t *testing.T) {
	got, err := Decode(Encode(Tracking{App: String("a"), Label: String("x;y")}))
	require.NoError(t, err)

	require.Equal(t, "a", *got.App)
	require.Equal(t, "x", *got.Label)
	require.Equal(t, "y", *got.Property)
	require.Nil(t, got.UserID)
}
