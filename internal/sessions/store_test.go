package sessions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectra-io/client/internal/api"
)

type failingStorage struct {
	*MemoryStorage
	err error
}

func (f *failingStorage) SetItem(string, string) error {
	return f.err
}

func (f *failingStorage) RemoveItem(string) error {
	return f.err
}

func newTestStore(t *testing.T, storage LocalStorage) (*Store, *api.Client) {
	t.Helper()

	client := api.New("http://api.example.com")
	store, err := NewStore(storage, client)
	require.NoError(t, err)

	return store, client
}

func TestNewStore_InitialState(t *testing.T) {
	t.Run("anonymous when storage is empty", func(t *testing.T) {
		store, client := newTestStore(t, NewMemoryStorage())

		assert.False(t, store.Authenticated())
		assert.Empty(t, store.Token())
		assert.Empty(t, client.AuthorizationHeader())
	})

	t.Run("authenticated when storage holds a token", func(t *testing.T) {
		storage := NewMemoryStorage()
		require.NoError(t, storage.SetItem(TokenKey, "stored-token"))

		store, client := newTestStore(t, storage)

		assert.True(t, store.Authenticated())
		assert.Equal(t, "stored-token", store.Token())
		assert.Equal(t, "Bearer stored-token", client.AuthorizationHeader())
	})
}

func TestStore_SetTokenSyncsHeader(t *testing.T) {
	store, client := newTestStore(t, NewMemoryStorage())

	for _, token := range []string{"tok123", "x", "eyJhbGciOiJIUzI1NiJ9.e30.sig", "token with spaces"} {
		require.NoError(t, store.SetToken(token))
		assert.Equal(t, "Bearer "+token, client.AuthorizationHeader())
		assert.Equal(t, token, store.Token())
	}
}

func TestStore_ClearTokenRemovesHeaderAndStorage(t *testing.T) {
	storage := NewMemoryStorage()
	store, client := newTestStore(t, storage)

	require.NoError(t, store.SetToken("tok123"))
	require.NoError(t, store.SetToken(""))

	assert.False(t, store.Authenticated())
	assert.Empty(t, client.AuthorizationHeader())

	_, ok, err := storage.GetItem(TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetTokenIsIdempotent(t *testing.T) {
	once := NewMemoryStorage()
	onceStore, onceClient := newTestStore(t, once)
	require.NoError(t, onceStore.SetToken("tok123"))

	twice := NewMemoryStorage()
	twiceStore, twiceClient := newTestStore(t, twice)
	require.NoError(t, twiceStore.SetToken("tok123"))
	require.NoError(t, twiceStore.SetToken("tok123"))

	onceValue, _, _ := once.GetItem(TokenKey)
	twiceValue, _, _ := twice.GetItem(TokenKey)

	assert.Equal(t, onceValue, twiceValue)
	assert.Equal(t, onceClient.AuthorizationHeader(), twiceClient.AuthorizationHeader())
	assert.Equal(t, onceStore.Token(), twiceStore.Token())
}

func TestStore_TokenSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	storage, err := NewFileStorage(dir, "http://api.example.com:8000")
	require.NoError(t, err)
	store, _ := newTestStore(t, storage)
	require.NoError(t, store.SetToken("persisted-token"))

	// Simulate a new process reading the same file.
	restarted, err := NewFileStorage(dir, "http://api.example.com:8000")
	require.NoError(t, err)
	restartedStore, client := newTestStore(t, restarted)

	assert.Equal(t, "persisted-token", restartedStore.Token())
	assert.Equal(t, "Bearer persisted-token", client.AuthorizationHeader())
}

func TestStore_StorageFailureKeepsPreviousState(t *testing.T) {
	storage := &failingStorage{
		MemoryStorage: NewMemoryStorage(),
		err:           errors.New("disk full"),
	}
	store, client := newTestStore(t, storage)

	err := store.SetToken("tok123")
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")

	assert.Empty(t, store.Token())
	assert.Empty(t, client.AuthorizationHeader())
}

func TestFromContext(t *testing.T) {
	store, _ := newTestStore(t, NewMemoryStorage())

	t.Run("mounted store is returned", func(t *testing.T) {
		ctx := WithStore(context.Background(), store)

		got, err := FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, store, got)
	})

	outside := map[string]context.Context{
		"background":   context.Background(),
		"cancelled":    cancelledContext(),
		"nil store":    WithStore(context.Background(), nil),
		"other values": context.WithValue(context.Background(), struct{}{}, "value"),
	}

	for name, ctx := range outside {
		t.Run("outside provider: "+name, func(t *testing.T) {
			_, err := FromContext(ctx)

			var configErr *ConfigurationError
			require.True(t, errors.As(err, &configErr))
			assert.Contains(t, err.Error(), "used outside provider")
		})
	}
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
