package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundTrip(t *testing.T) {
	issuer := Issuer{Secret: "test-secret", Issuer: "mytutor", TTL: time.Hour}

	tok, err := issuer.Issue("u1", "Alice", "alice@example.com", "STUDENT", false, "active")
	require.NoError(t, err)

	claims, err := issuer.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "STUDENT", claims.Role)
	require.False(t, claims.Verified)
	require.Equal(t, "mytutor", claims.RegisteredClaims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := New("secret-a", "mytutor", time.Hour, Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = Parse("secret-b", tok)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := New("s", "mytutor", -time.Minute, Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = Parse("s", tok)
	require.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	issuer := Issuer{Secret: "s", Issuer: "mytutor", TTL: time.Hour}
	a, err := issuer.Issue("u1", "", "", "STUDENT", false, "active")
	require.NoError(t, err)
	b, err := issuer.Issue("u1", "", "", "STUDENT", false, "active")
	require.NoError(t, err)

	ca, err := issuer.Parse(a)
	require.NoError(t, err)
	cb, err := issuer.Parse(b)
	require.NoError(t, err)
	require.NotEqual(t, ca.ID, cb.ID)
}

func TestWellFormed(t *testing.T) {
	tok, err := New("s", "mytutor", time.Hour, Claims{UserID: "u1"})
	require.NoError(t, err)

	require.True(t, WellFormed(tok))
	require.False(t, WellFormed("garbage"))
	require.False(t, WellFormed(""))
}
