package usecase

import (
	"context"
	"errors"
	"fmt"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
)

// ErrSelfSuspension guards an admin locking themselves out.
var ErrSelfSuspension = errors.New("cannot change own account status")

// UpdateStatusInput flips one account between active and suspended.
type UpdateStatusInput struct {
	ActorID string // the admin performing the change
	UserID  string
	Status  auth.AccountStatus
}

// UpdateStatusUseCase suspends or reinstates an account. Existing tokens
// keep their claims; the session guard re-checks status on the next load.
type UpdateStatusUseCase struct {
	Repo repository.UserRepository
}

func NewUpdateStatusUseCase(repo repository.UserRepository) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{Repo: repo}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, in UpdateStatusInput) (*auth.User, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if in.UserID == in.ActorID {
		return nil, ErrSelfSuspension
	}

	if _, err := uc.Repo.GetUserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := uc.Repo.SetStatus(ctx, in.UserID, in.Status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user, err := uc.Repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
