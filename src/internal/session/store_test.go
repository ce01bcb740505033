package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	assert.Empty(t, store.Get(KeyToken), "missing file reads as empty")

	require.NoError(t, store.Set(KeyToken, "tok-1"))
	require.NoError(t, store.Set(KeyUsername, "admin"))
	assert.Equal(t, "tok-1", store.Get(KeyToken))
	assert.Equal(t, "admin", store.Get(KeyUsername))

	// a fresh handle over the same file sees the persisted values
	reopened := NewFileStore(path)
	assert.Equal(t, "tok-1", reopened.Get(KeyToken))
}

func TestFileStore_DeleteClearsKeys(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Set(KeyToken, "tok-1"))
	require.NoError(t, store.Set(KeyUsername, "admin"))
	require.NoError(t, store.Set(KeyLastActivity, "123"))

	require.NoError(t, store.Delete(KeyToken, KeyUsername, KeyLastActivity))

	assert.Empty(t, store.Get(KeyToken))
	assert.Empty(t, store.Get(KeyUsername))
	assert.Empty(t, store.Get(KeyLastActivity))
}
