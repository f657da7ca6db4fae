package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")

	store := NewFileStore(path, ModeToken)
	_, present := store.Read()
	assert.False(t, present, "fresh store reads absent")

	require.NoError(t, store.Write("tok-1"))

	// A second store over the same file sees the durable copy.
	reopened := NewFileStore(path, ModeToken)
	value, present := reopened.Read()
	require.True(t, present)
	assert.Equal(t, "tok-1", value)

	require.NoError(t, reopened.Clear())

	third := NewFileStore(path, ModeToken)
	_, present = third.Read()
	assert.False(t, present, "clear removes the durable copy")
}

func TestFileStoreModesDoNotCollide(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")

	tokenStore := NewFileStore(path, ModeToken)
	require.NoError(t, tokenStore.Write("tok-1"))

	keyStore := NewFileStore(path, ModeSessionKey)
	_, present := keyStore.Read()
	assert.False(t, present, "session key slot is independent of the token slot")

	require.NoError(t, keyStore.Write("key-1"))

	value, present := NewFileStore(path, ModeToken).Read()
	require.True(t, present)
	assert.Equal(t, "tok-1", value)
}

func TestFileStoreDegradesToCacheOnly(t *testing.T) {
	// Parent "directory" is a regular file, so the durable layer can never
	// be written.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	path := filepath.Join(blocker, "credentials")

	store := NewFileStore(path, ModeToken)
	_, present := store.Read()
	assert.False(t, present)

	require.NoError(t, store.Write("tok-1"), "durable failure must not surface")

	value, present := store.Read()
	require.True(t, present)
	assert.Equal(t, "tok-1", value, "cache keeps working without a durable layer")

	require.NoError(t, store.Clear())
	_, present = store.Read()
	assert.False(t, present)
}

func TestFileStoreWriteEmptyEqualsClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")

	store := NewFileStore(path, ModeToken)
	require.NoError(t, store.Write("tok-1"))
	require.NoError(t, store.Write(""))

	_, present := store.Read()
	assert.False(t, present)

	_, present = NewFileStore(path, ModeToken).Read()
	assert.False(t, present)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, present := store.Read()
	assert.False(t, present)

	require.NoError(t, store.Write("v1"))
	value, present := store.Read()
	require.True(t, present)
	assert.Equal(t, "v1", value)

	require.NoError(t, store.Clear())
	_, present = store.Read()
	assert.False(t, present)
}
