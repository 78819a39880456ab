package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.NoError(t, CheckPassword(hash, "correct horse battery staple"))
	require.Error(t, CheckPassword(hash, "wrong password"))
}

func TestNewOTPShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		otp, err := NewOTP()
		require.NoError(t, err)
		require.Len(t, otp, 4)
		for _, r := range otp {
			require.True(t, r >= '0' && r <= '9')
		}
		seen[otp] = true
	}
	// 20 draws from 10000 values collapsing to one would mean a broken RNG.
	require.Greater(t, len(seen), 1)
}
