package sessions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageName(t *testing.T) {
	tests := []struct {
		apiURL string
		expect string
	}{
		{apiURL: "http://localhost:8000", expect: "localhost_8000"},
		{apiURL: "https://api.spectra.dev/", expect: "api.spectra.dev"},
		{apiURL: "", expect: "default"},
		{apiURL: "/relative/path", expect: "default"},
		{apiURL: "://bad", expect: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.apiURL, func(t *testing.T) {
			assert.Equal(t, tt.expect, StorageName(tt.apiURL))
		})
	}
}

func TestFileStorage_SetGetRemove(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)

	_, ok, err := storage.GetItem("token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem("token", "abc"))

	value, ok, err := storage.GetItem("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, storage.RemoveItem("token"))

	_, ok, err = storage.GetItem("token")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing a missing key is not an error.
	require.NoError(t, storage.RemoveItem("token"))
}

func TestFileStorage_FilePermissions(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	require.NoError(t, storage.SetItem("token", "abc"))

	info, err := os.Stat(storage.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.Equal(t, "localhost_8000.yaml", filepath.Base(storage.Path()))
}

func TestFileStorage_ShorterValueOverwritesCleanly(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewFileStorage(dir, "http://localhost:8000")
	require.NoError(t, err)
	require.NoError(t, storage.SetItem("token", "a-very-long-token-value-that-takes-space"))
	require.NoError(t, storage.SetItem("token", "short"))

	reloaded, err := NewFileStorage(dir, "http://localhost:8000")
	require.NoError(t, err)

	value, ok, err := reloaded.GetItem("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "short", value)
}

func TestFileStorage_CorruptFileIsReinitialized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "localhost_8000.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [this is: not valid"), 0600))

	storage, err := NewFileStorage(dir, "http://localhost:8000")
	require.NoError(t, err)

	_, ok, err := storage.GetItem("token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem("token", "fresh"))
	value, _, _ := storage.GetItem("token")
	assert.Equal(t, "fresh", value)
}

func TestFileStorage_FailedWriteKeepsPreviousState(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)
	require.NoError(t, storage.SetItem(TokenKey, "first"))

	// A directory in place of the file makes every write fail.
	require.NoError(t, os.Remove(storage.Path()))
	require.NoError(t, os.Mkdir(storage.Path(), 0700))

	assert.Error(t, storage.SetItem(TokenKey, "second"))
	value, ok, err := storage.GetItem(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", value)

	assert.Error(t, storage.RemoveItem(TokenKey))
	value, ok, err = storage.GetItem(TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", value)

	store, client := newTestStore(t, storage)

	assert.Error(t, store.SetToken(""))
	assert.Equal(t, "first", store.Token())
	assert.Equal(t, "Bearer first", client.AuthorizationHeader())
}

func TestFileStorage_SeparateFilesPerHost(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStorage(dir, "http://one.example.com")
	require.NoError(t, err)
	second, err := NewFileStorage(dir, "http://two.example.com")
	require.NoError(t, err)

	require.NoError(t, first.SetItem("token", "one"))

	_, ok, err := second.GetItem("token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expanded, err := expandHome("~/.config/spectra/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "spectra"), expanded)

	unchanged, err := expandHome("/var/lib/spectra")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/spectra", unchanged)
}

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	require.NoError(t, storage.SetItem("token", "abc"))
	value, ok, err := storage.GetItem("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	require.NoError(t, storage.RemoveItem("token"))
	_, ok, _ = storage.GetItem("token")
	assert.False(t, ok)
}
