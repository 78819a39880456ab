package repository

import (
	"context"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, u auth.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
	SetVerified(ctx context.Context, id string, verified bool) error
	SetStatus(ctx context.Context, id string, status auth.AccountStatus) error
	ListUsers(ctx context.Context, limit int, offset int) ([]auth.User, error)
}
