package usecase

import (
	"context"
	"fmt"

	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	repository "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/persistence/repository/port"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// GoogleLoginInput carries the profile the OAuth callback obtained from the
// provider. The token exchange itself happens in the controller; the use
// case only trusts an already-verified email.
type GoogleLoginInput struct {
	Email string
	Name  string
	Role  auth.Role // applied only when the account does not exist yet
}

// GoogleLoginUseCase signs in (or signs up) a user from a Google profile.
// Provider-verified emails skip the OTP flow.
type GoogleLoginUseCase struct {
	Repo   repository.UserRepository
	Tokens token.Issuer
}

func NewGoogleLoginUseCase(repo repository.UserRepository, tokens token.Issuer) *GoogleLoginUseCase {
	return &GoogleLoginUseCase{Repo: repo, Tokens: tokens}
}

func (uc *GoogleLoginUseCase) Execute(ctx context.Context, in GoogleLoginInput) (*LoginOutput, error) {
	user, err := uc.Repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == auth.ErrUserNotFound:
		candidate, nerr := auth.NewUser(in.Name, in.Email, in.Role)
		if nerr != nil {
			return nil, nerr
		}
		candidate.Verified = true
		id, cerr := uc.Repo.CreateUser(ctx, *candidate)
		if cerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, cerr)
		}
		candidate.ID = id
		user = candidate
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	case !user.Verified:
		// An existing password account becomes verified once the same email
		// arrives through the provider.
		if verr := uc.Repo.SetVerified(ctx, user.ID, true); verr != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, verr)
		}
		user.Verified = true
	}

	tok, err := uc.Tokens.Issue(user.ID, user.Name, user.Email, user.Role.String(), user.Verified, user.Status.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &LoginOutput{User: *user, Token: tok}, nil
}
