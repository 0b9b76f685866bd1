package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", h)

	require.True(t, CheckPassword(h, "secret"))
	require.False(t, CheckPassword(h, "wrong"))
}
