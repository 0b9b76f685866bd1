package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolveMintsWhenAbsent(t *testing.T) {
	token, issued := Resolve("")
	require.True(t, issued)
	_, err := uuid.Parse(token)
	require.NoError(t, err)
}

func TestResolveMintsWhenUnrecognized(t *testing.T) {
	token, issued := Resolve("not-a-token")
	require.True(t, issued)
	require.NotEqual(t, "not-a-token", token)
	_, err := uuid.Parse(token)
	require.NoError(t, err)
}

func TestResolveRoundTripsValidToken(t *testing.T) {
	first, issued := Resolve("")
	require.True(t, issued)

	second, issued := Resolve(first)
	require.False(t, issued)
	require.Equal(t, first, second)
}

func TestResolveNeverReusesAcrossVisitors(t *testing.T) {
	a, _ := Resolve("")
	b, _ := Resolve("")
	require.NotEqual(t, a, b)
}
