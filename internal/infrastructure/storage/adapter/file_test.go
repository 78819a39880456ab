package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/storage/port"
)

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStorage(path)
	require.NoError(t, err)

	_, err = s.Get("missing")
	require.ErrorIs(t, err, port.ErrNoValue)

	require.NoError(t, s.Set("session", `{"user":"u1"}`))
	got, err := s.Get("session")
	require.NoError(t, err)
	require.Equal(t, `{"user":"u1"}`, got)

	// Values survive a reopen.
	reopened, err := NewFileStorage(path)
	require.NoError(t, err)
	got, err = reopened.Get("session")
	require.NoError(t, err)
	require.Equal(t, `{"user":"u1"}`, got)
}

func TestFileStorageRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStorage(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Remove("k"))
	_, err = s.Get("k")
	require.ErrorIs(t, err, port.ErrNoValue)

	// Removing an absent key is not an error.
	require.NoError(t, s.Remove("k"))
}

func TestFileStorageToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o600))

	s, err := NewFileStorage(path)
	require.NoError(t, err)

	_, err = s.Get("anything")
	require.ErrorIs(t, err, port.ErrNoValue)

	// Writes recover the file.
	require.NoError(t, s.Set("k", "v"))
	got, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", got)
}
