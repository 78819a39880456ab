package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
)

func activeSession(role auth.Role) *Session {
	return &Session{
		UserID:   "u1",
		Role:     role,
		Verified: true,
		Status:   auth.StatusActive,
		Token:    "tok",
	}
}

func TestAuthorizePublicView(t *testing.T) {
	d := Authorize(nil, Requirements{})
	require.True(t, d.Allow)

	// Logged-in users can see public views too.
	d = Authorize(activeSession(auth.RoleStudent), Requirements{})
	require.True(t, d.Allow)
}

func TestAuthorizeRedirectsAnonymous(t *testing.T) {
	cases := []struct {
		name string
		req  Requirements
		want string
	}{
		{"plain auth", Requirements{Auth: true}, RedirectSignIn},
		{"student view", Requirements{Role: RequireRole(auth.RoleStudent)}, RedirectSignInStudent},
		{"teacher view", Requirements{Role: RequireRole(auth.RoleTeacher)}, RedirectSignInTeacher},
		{"admin view", Requirements{Role: RequireRole(auth.RoleAdmin)}, RedirectAdminLogin},
		{"verified only", Requirements{Verified: true}, RedirectSignIn},
		{"active only", Requirements{Active: true}, RedirectSignIn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Authorize(nil, tc.req)
			require.False(t, d.Allow)
			require.Equal(t, tc.want, d.Redirect)
			require.ErrorIs(t, d.Reason, ErrAuthRequired)
		})
	}
}

func TestAuthorizeRoleMismatch(t *testing.T) {
	d := Authorize(activeSession(auth.RoleStudent), Requirements{Role: RequireRole(auth.RoleTeacher)})
	require.False(t, d.Allow)
	require.Equal(t, RedirectSignInTeacher, d.Redirect)
	require.ErrorIs(t, d.Reason, ErrAuthForbidden)
}

func TestAuthorizeUnverified(t *testing.T) {
	sess := activeSession(auth.RoleStudent)
	sess.Verified = false

	d := Authorize(sess, Requirements{Role: RequireRole(auth.RoleStudent), Verified: true})
	require.False(t, d.Allow)
	require.Equal(t, RedirectVerifyEmail, d.Redirect)
	require.ErrorIs(t, d.Reason, ErrAccountUnverified)
}

func TestAuthorizeSuspended(t *testing.T) {
	sess := activeSession(auth.RoleTeacher)
	sess.Status = auth.StatusInactive

	d := Authorize(sess, Requirements{Auth: true, Active: true})
	require.False(t, d.Allow)
	require.Equal(t, RedirectSuspended, d.Redirect)
	require.ErrorIs(t, d.Reason, ErrAccountInactive)
}

// An anonymous caller failing several requirements at once only ever learns
// about the auth failure; role and verification are not evaluated.
func TestAuthorizeFailsFastOnAuth(t *testing.T) {
	d := Authorize(nil, Requirements{Role: RequireRole(auth.RoleTeacher), Verified: true, Active: true})
	require.ErrorIs(t, d.Reason, ErrAuthRequired)
	require.Equal(t, RedirectSignInTeacher, d.Redirect)
}

// A role mismatch on an unverified, suspended account reports only the role
// failure.
func TestAuthorizeOrderRoleBeforeVerified(t *testing.T) {
	sess := activeSession(auth.RoleStudent)
	sess.Verified = false
	sess.Status = auth.StatusInactive

	d := Authorize(sess, Requirements{Role: RequireRole(auth.RoleTeacher), Verified: true, Active: true})
	require.ErrorIs(t, d.Reason, ErrAuthForbidden)
}

func TestAuthorizeAllowsSatisfiedRequirements(t *testing.T) {
	d := Authorize(activeSession(auth.RoleTeacher), Requirements{
		Role:     RequireRole(auth.RoleTeacher),
		Verified: true,
		Active:   true,
	})
	require.True(t, d.Allow)
	require.Empty(t, d.Redirect)
	require.NoError(t, d.Reason)
}
