package usecase

import (
	"context"
	"fmt"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/crypto"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// LoginInput carries sign-in credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput is the session payload the client stores.
type LoginOutput struct {
	User  auth.User
	Token string
}

// LoginUseCase authenticates by email/password and issues an access token.
// Lookup failure and password mismatch both surface as ErrInvalidCredentials
// so callers cannot probe which emails exist.
type LoginUseCase struct {
	Repo   repository.UserRepository
	Tokens token.Issuer
}

func NewLoginUseCase(repo repository.UserRepository, tokens token.Issuer) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Tokens: tokens}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	user, err := uc.Repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if err == auth.ErrUserNotFound {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := crypto.CheckPassword(user.PasswordHash, in.Password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	tok, err := uc.Tokens.Issue(user.ID, user.Name, user.Email, user.Role.String(), user.Verified, user.Status.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &LoginOutput{User: *user, Token: tok}, nil
}
