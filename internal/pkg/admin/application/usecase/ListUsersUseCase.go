package usecase

import (
	"context"
	"fmt"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
)

// ListUsersInput pages through the account table.
type ListUsersInput struct {
	Limit  int
	Offset int
}

// ListUsersUseCase returns a page of accounts for the admin dashboard.
type ListUsersUseCase struct {
	Repo repository.UserRepository
}

func NewListUsersUseCase(repo repository.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{Repo: repo}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, in ListUsersInput) ([]auth.User, error) {
	users, err := uc.Repo.ListUsers(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
