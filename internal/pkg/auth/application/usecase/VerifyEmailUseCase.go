package usecase

import (
	"context"
	"errors"
	"fmt"

	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// VerifyEmailInput pairs the authenticated user with the submitted code.
type VerifyEmailInput struct {
	UserID string
	Code   string
}

// VerifyEmailUseCase checks the staged OTP and flips the account to
// verified. The code is deleted on first successful match; a wrong code
// leaves it in place until the cache TTL expires, which bounds the retry
// window.
type VerifyEmailUseCase struct {
	Repo   repository.UserRepository
	Cache  cacheport.Cache
	Tokens token.Issuer
}

func NewVerifyEmailUseCase(repo repository.UserRepository, cache cacheport.Cache, tokens token.Issuer) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{Repo: repo, Cache: cache, Tokens: tokens}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, in VerifyEmailInput) (*LoginOutput, error) {
	if in.UserID == "" || in.Code == "" {
		return nil, fmt.Errorf("user id and code are required")
	}

	staged, err := uc.Cache.Get(ctx, otpKey(in.UserID))
	if errors.Is(err, cacheport.ErrMiss) {
		return nil, auth.ErrCodeExpired
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if staged != in.Code {
		return nil, auth.ErrInvalidCode
	}

	if _, err := uc.Cache.Del(ctx, otpKey(in.UserID)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := uc.Repo.SetVerified(ctx, in.UserID, true); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	user, err := uc.Repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Re-issue so the stored session reflects verified=true immediately.
	tok, err := uc.Tokens.Issue(user.ID, user.Name, user.Email, user.Role.String(), user.Verified, user.Status.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &LoginOutput{User: *user, Token: tok}, nil
}
