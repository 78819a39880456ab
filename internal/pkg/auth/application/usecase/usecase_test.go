package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cacheadapter "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/adapter"
	cacheport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/cache/port"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/crypto"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// fakeUserRepo is an in-memory UserRepository backed by a map keyed on id.
type fakeUserRepo struct {
	users  map[string]*auth.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u auth.User) (string, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return "", auth.ErrEmailTaken
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("u%d", r.nextID)
	u.CreatedAt = time.Now()
	r.users[u.ID] = &u
	return u.ID, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) SetVerified(_ context.Context, id string, verified bool) error {
	u, ok := r.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.Verified = verified
	return nil
}

func (r *fakeUserRepo) SetStatus(_ context.Context, id string, status auth.AccountStatus) error {
	u, ok := r.users[id]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, _ int, _ int) ([]auth.User, error) {
	out := make([]auth.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

var testIssuer = token.Issuer{Secret: "test-secret", Issuer: "mytutor", TTL: time.Hour}

func TestRegisterStagesOTP(t *testing.T) {
	repo := newFakeUserRepo()
	cache := cacheadapter.NewMemoryCache()
	uc := NewRegisterUseCase(repo, cache, testIssuer, 10*time.Minute)

	out, err := uc.Execute(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "longenough",
		Role:     auth.RoleStudent,
	})
	require.NoError(t, err)
	require.False(t, out.User.Verified)
	require.Equal(t, "alice@example.com", out.User.Email)
	require.Len(t, out.OTP, 4)
	require.NotEmpty(t, out.Token)

	staged, err := cache.Get(context.Background(), "otp:"+out.User.ID)
	require.NoError(t, err)
	require.Equal(t, out.OTP, staged)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	uc := NewRegisterUseCase(newFakeUserRepo(), cacheadapter.NewMemoryCache(), testIssuer, time.Minute)
	_, err := uc.Execute(context.Background(), RegisterInput{
		Name: "A", Email: "a@b.c", Password: "short", Role: auth.RoleStudent,
	})
	require.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	cache := cacheadapter.NewMemoryCache()
	uc := NewRegisterUseCase(repo, cache, testIssuer, time.Minute)

	in := RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough", Role: auth.RoleTeacher}
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	require.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestLoginUniformErrors(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := crypto.HashPassword("longenough")
	require.NoError(t, err)
	id, err := repo.CreateUser(context.Background(), auth.User{
		Name: "Alice", Email: "a@b.c", PasswordHash: hash, Role: auth.RoleStudent,
	})
	require.NoError(t, err)

	uc := NewLoginUseCase(repo, testIssuer)

	// Unknown email and wrong password are indistinguishable.
	_, err = uc.Execute(context.Background(), LoginInput{Email: "who@b.c", Password: "longenough"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = uc.Execute(context.Background(), LoginInput{Email: "a@b.c", Password: "wrongwrong"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	out, err := uc.Execute(context.Background(), LoginInput{Email: "a@b.c", Password: "longenough"})
	require.NoError(t, err)
	require.Equal(t, id, out.User.ID)
	require.NotEmpty(t, out.Token)
}

func TestVerifyEmailFlow(t *testing.T) {
	repo := newFakeUserRepo()
	cache := cacheadapter.NewMemoryCache()
	reg := NewRegisterUseCase(repo, cache, testIssuer, 10*time.Minute)
	ver := NewVerifyEmailUseCase(repo, cache, testIssuer)

	out, err := reg.Execute(context.Background(), RegisterInput{
		Name: "Alice", Email: "a@b.c", Password: "longenough", Role: auth.RoleStudent,
	})
	require.NoError(t, err)

	// A wrong code is rejected and the staged code survives for another try.
	wrong := "0000"
	if out.OTP == wrong {
		wrong = "0001"
	}
	_, err = ver.Execute(context.Background(), VerifyEmailInput{UserID: out.User.ID, Code: wrong})
	require.ErrorIs(t, err, auth.ErrInvalidCode)

	verified, err := ver.Execute(context.Background(), VerifyEmailInput{UserID: out.User.ID, Code: out.OTP})
	require.NoError(t, err)
	require.True(t, verified.User.Verified)

	// The code is single-use.
	_, err = ver.Execute(context.Background(), VerifyEmailInput{UserID: out.User.ID, Code: out.OTP})
	require.ErrorIs(t, err, auth.ErrCodeExpired)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	repo := newFakeUserRepo()
	cache := cacheadapter.NewMemoryCache()
	ver := NewVerifyEmailUseCase(repo, cache, testIssuer)

	id, err := repo.CreateUser(context.Background(), auth.User{Name: "A", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = ver.Execute(context.Background(), VerifyEmailInput{UserID: id, Code: "1234"})
	require.ErrorIs(t, err, auth.ErrCodeExpired)
}

func TestLogoutRevokesToken(t *testing.T) {
	cache := cacheadapter.NewMemoryCache()
	uc := NewLogoutUseCase(cache)

	err := uc.Execute(context.Background(), LogoutInput{
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), RevokedKey("jti-1"))
	require.NoError(t, err)
}

func TestLogoutExpiredTokenIsNoop(t *testing.T) {
	cache := cacheadapter.NewMemoryCache()
	uc := NewLogoutUseCase(cache)

	err := uc.Execute(context.Background(), LogoutInput{
		TokenID:   "jti-2",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), RevokedKey("jti-2"))
	require.ErrorIs(t, err, cacheport.ErrMiss)
}

func TestGoogleLoginCreatesVerifiedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewGoogleLoginUseCase(repo, testIssuer)

	out, err := uc.Execute(context.Background(), GoogleLoginInput{
		Email: "g@b.c", Name: "Gina", Role: auth.RoleTeacher,
	})
	require.NoError(t, err)
	require.True(t, out.User.Verified)
	require.Equal(t, auth.RoleTeacher, out.User.Role)

	// A second login reuses the account.
	again, err := uc.Execute(context.Background(), GoogleLoginInput{Email: "g@b.c", Name: "Gina"})
	require.NoError(t, err)
	require.Equal(t, out.User.ID, again.User.ID)
}

func TestGoogleLoginVerifiesExistingAccount(t *testing.T) {
	repo := newFakeUserRepo()
	id, err := repo.CreateUser(context.Background(), auth.User{
		Name: "Alice", Email: "a@b.c", Role: auth.RoleStudent,
	})
	require.NoError(t, err)

	uc := NewGoogleLoginUseCase(repo, testIssuer)
	out, err := uc.Execute(context.Background(), GoogleLoginInput{Email: "a@b.c", Name: "Alice"})
	require.NoError(t, err)
	require.Equal(t, id, out.User.ID)
	require.True(t, out.User.Verified)
}
