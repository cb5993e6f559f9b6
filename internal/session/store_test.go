package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golfctl", "session.json")
	store := NewFileStore(path)

	_, ok := store.Current()
	assert.False(t, ok, "fresh store should have no session")

	want := Session{AccessToken: "tok-123", UserID: "user-abc"}
	require.NoError(t, store.Save(want))

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, want, got)

	// A second store over the same path sees the persisted session.
	reopened := NewFileStore(path)
	got, ok = reopened.Current()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Session{AccessToken: "t", UserID: "u"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreRejectsPartialSession(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	assert.ErrorIs(t, store.Save(Session{AccessToken: "only-token"}), ErrPartialSession)
	assert.ErrorIs(t, store.Save(Session{UserID: "only-user"}), ErrPartialSession)
	assert.ErrorIs(t, store.Save(Session{}), ErrPartialSession)
}

func TestFileStoreIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, ok := NewFileStore(path).Current()
	assert.False(t, ok)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Session{AccessToken: "t", UserID: "u"}))

	require.NoError(t, store.Clear())
	_, ok := store.Current()
	assert.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	_, ok := store.Current()
	assert.False(t, ok)

	require.NoError(t, store.Save(Session{AccessToken: "t", UserID: "u"}))
	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "u", got.UserID)

	assert.ErrorIs(t, store.Save(Session{UserID: "u"}), ErrPartialSession)

	require.NoError(t, store.Clear())
	_, ok = store.Current()
	assert.False(t, ok)
}
