package usecase

import (
	"context"
	"fmt"
	"time"

	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/crypto"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     auth.Role
}

// RegisterOutput returns the created account, its access token and the
// verification code destined for the email pipeline. The code never appears
// in the HTTP response.
type RegisterOutput struct {
	User  auth.User
	Token string
	OTP   string
}

// RegisterUseCase creates an unverified account, issues a token and stages
// a verification code in the cache.
type RegisterUseCase struct {
	Repo   repository.UserRepository
	Cache  cacheport.Cache
	Tokens token.Issuer
	OTPTTL time.Duration
}

func NewRegisterUseCase(repo repository.UserRepository, cache cacheport.Cache, tokens token.Issuer, otpTTL time.Duration) *RegisterUseCase {
	return &RegisterUseCase{Repo: repo, Cache: cache, Tokens: tokens, OTPTTL: otpTTL}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	user, err := auth.NewUser(in.Name, in.Email, in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	user.PasswordHash = hash

	id, err := uc.Repo.CreateUser(ctx, *user)
	if err != nil {
		if err == auth.ErrEmailTaken {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	user.ID = id

	otp, err := crypto.NewOTP()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := uc.Cache.Set(ctx, otpKey(user.ID), otp, uc.OTPTTL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	tok, err := uc.Tokens.Issue(user.ID, user.Name, user.Email, user.Role.String(), user.Verified, user.Status.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &RegisterOutput{User: *user, Token: tok, OTP: otp}, nil
}

func otpKey(userID string) string {
	return "otp:" + userID
}
