package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/storage/adapter"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

func mintToken(t *testing.T) string {
	t.Helper()
	tok, err := token.New("test-secret", "mytutor", time.Hour, token.Claims{UserID: "u1"})
	require.NoError(t, err)
	return tok
}

func TestStoreRoundTrip(t *testing.T) {
	storage := adapter.NewMemoryStorage()
	store := NewStore(storage)
	require.Nil(t, store.GetSession())

	sess := Session{
		UserID:   "u1",
		Name:     "Alice",
		Email:    "alice@example.com",
		Role:     auth.RoleStudent,
		Verified: true,
		Status:   auth.StatusActive,
		Token:    mintToken(t),
	}
	require.NoError(t, store.SetSession(sess))

	// A fresh store over the same storage sees the persisted session.
	reloaded := NewStore(storage)
	got := reloaded.GetSession()
	require.NotNil(t, got)
	require.Equal(t, sess, *got)
}

func TestStoreClearSession(t *testing.T) {
	storage := adapter.NewMemoryStorage()
	store := NewStore(storage)
	require.NoError(t, store.SetSession(Session{UserID: "u1", Token: mintToken(t)}))

	require.NoError(t, store.ClearSession())
	require.Nil(t, store.GetSession())
	require.Nil(t, NewStore(storage).GetSession())
}

func TestStoreSelfHealsMalformedJSON(t *testing.T) {
	storage := adapter.NewMemoryStorage()
	require.NoError(t, storage.Set("mytutor.session", "{not json"))

	store := NewStore(storage)
	require.Nil(t, store.GetSession())

	// The corrupt record is removed, not left to fail again next boot.
	_, err := storage.Get("mytutor.session")
	require.Error(t, err)
}

func TestStoreSelfHealsBadToken(t *testing.T) {
	storage := adapter.NewMemoryStorage()
	require.NoError(t, storage.Set("mytutor.session",
		`{"user_id":"u1","token":"not-a-jwt"}`))

	store := NewStore(storage)
	require.Nil(t, store.GetSession())
	_, err := storage.Get("mytutor.session")
	require.Error(t, err)
}

func TestStoreSelfHealsMissingUserID(t *testing.T) {
	storage := adapter.NewMemoryStorage()
	require.NoError(t, storage.Set("mytutor.session",
		`{"user_id":"","token":"`+mintToken(t)+`"}`))

	store := NewStore(storage)
	require.Nil(t, store.GetSession())
}

func TestGetSessionReturnsCopy(t *testing.T) {
	store := NewStore(adapter.NewMemoryStorage())
	require.NoError(t, store.SetSession(Session{UserID: "u1", Name: "Alice", Token: mintToken(t)}))

	first := store.GetSession()
	first.Name = "mutated"

	second := store.GetSession()
	require.Equal(t, "Alice", second.Name)
}
