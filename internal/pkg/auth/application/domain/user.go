package auth

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for auth behaviors
var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken         = errors.New("auth: email is already registered")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrInvalidCode        = errors.New("auth: invalid verification code")
	ErrCodeExpired        = errors.New("auth: verification code expired")
)

// Role identifies what kind of account the user holds.
// 0=student, 1=teacher, 2=admin
type Role int16

const (
	RoleStudent Role = 0
	RoleTeacher Role = 1
	RoleAdmin   Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleTeacher:
		return "TEACHER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "STUDENT"
	}
}

// ParseRole maps the wire representation back to a Role. Unknown values
// default to student, the least privileged role.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TEACHER":
		return RoleTeacher
	case "ADMIN":
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// AccountStatus captures whether the account may act on the platform.
// 0=active, 1=inactive (suspended)
type AccountStatus int16

const (
	StatusActive   AccountStatus = 0
	StatusInactive AccountStatus = 1
)

func (s AccountStatus) String() string {
	if s == StatusInactive {
		return "inactive"
	}
	return "active"
}

func ParseStatus(v string) AccountStatus {
	if strings.EqualFold(strings.TrimSpace(v), "inactive") {
		return StatusInactive
	}
	return StatusActive
}

// User is the persisted account record.
type User struct {
	ID           string        `db:"id"`
	Name         string        `db:"name"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	Role         Role          `db:"role"`
	Verified     bool          `db:"verified"`
	Status       AccountStatus `db:"status"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

// NewUser validates and normalizes a registration candidate.
func NewUser(name, email string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, errors.New("auth: name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("auth: a valid email is required")
	}
	if role == RoleAdmin {
		// Admin accounts are provisioned out of band, never via signup.
		return nil, errors.New("auth: cannot self-register an admin account")
	}
	return &User{
		Name:   name,
		Email:  email,
		Role:   role,
		Status: StatusActive,
	}, nil
}
