package controller

import (
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
)

// userPayload is the wire shape of an account, password hash excluded.
type userPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}

func toUserPayload(u auth.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role.String(),
		Verified: u.Verified,
		Status:   u.Status.String(),
	}
}
