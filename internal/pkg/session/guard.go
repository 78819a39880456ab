package session

import (
	"errors"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
)

// Guard failure taxonomy. These never escape as thrown errors at the
// navigation boundary; the Decision's redirect target is the user-visible
// outcome. The Reason is kept for logging.
var (
	ErrAuthRequired      = errors.New("session: authentication required")
	ErrAuthForbidden     = errors.New("session: role mismatch")
	ErrAccountUnverified = errors.New("session: email not verified")
	ErrAccountInactive   = errors.New("session: account inactive")
)

// Redirect targets for each unmet requirement.
const (
	RedirectSignIn        = "/signin"
	RedirectSignInStudent = "/signin/student"
	RedirectSignInTeacher = "/signin/teacher"
	RedirectAdminLogin    = "/admin/login"
	RedirectVerifyEmail   = "/verify-email"
	RedirectSuspended     = "/suspended"
)

// Requirements describes what a view demands from the current session.
// Zero value means public.
type Requirements struct {
	Auth     bool
	Role     *auth.Role
	Verified bool
	Active   bool
}

// RequireRole is a convenience for building a role requirement.
func RequireRole(r auth.Role) *auth.Role { return &r }

// Decision is the outcome of an authorization check: either Allow, or a
// redirect target describing where navigation should go.
type Decision struct {
	Allow    bool
	Redirect string
	Reason   error
}

func allow() Decision { return Decision{Allow: true} }

func redirect(target string, reason error) Decision {
	return Decision{Redirect: target, Reason: reason}
}

// Authorize evaluates requirements against the session snapshot. It is a
// pure function of its inputs and performs no I/O.
//
// Evaluation order is auth -> role -> verified -> active, failing fast on
// the first unmet condition so unauthenticated callers learn nothing about
// role or verification state.
func Authorize(sess *Session, req Requirements) Decision {
	needsAuth := req.Auth || req.Role != nil || req.Verified || req.Active

	if needsAuth && sess == nil {
		return redirect(signInTarget(req.Role), ErrAuthRequired)
	}
	if sess == nil {
		return allow()
	}

	if req.Role != nil && sess.Role != *req.Role {
		return redirect(signInTarget(req.Role), ErrAuthForbidden)
	}
	if req.Verified && !sess.Verified {
		return redirect(RedirectVerifyEmail, ErrAccountUnverified)
	}
	if req.Active && sess.Status != auth.StatusActive {
		return redirect(RedirectSuspended, ErrAccountInactive)
	}
	return allow()
}

// signInTarget picks the sign-in flow matching the required role.
func signInTarget(role *auth.Role) string {
	if role == nil {
		return RedirectSignIn
	}
	switch *role {
	case auth.RoleTeacher:
		return RedirectSignInTeacher
	case auth.RoleAdmin:
		return RedirectAdminLogin
	default:
		return RedirectSignInStudent
	}
}
