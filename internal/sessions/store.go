package sessions

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// TokenKey is the storage key holding the raw bearer token.
const TokenKey = "token"

// HeaderSetter receives every token change. api.Client satisfies it.
type HeaderSetter interface {
	SetAuthorizationToken(token string)
}

// Store owns the session token. It starts Authenticated when storage
// already holds a token and Anonymous otherwise, and keeps storage and the
// HTTP client header in step with the token.
type Store struct {
	lock    sync.RWMutex
	token   string
	storage LocalStorage
	client  HeaderSetter
}

func NewStore(storage LocalStorage, client HeaderSetter) (*Store, error) {

	token, _, err := storage.GetItem(TokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored token: %w", err)
	}

	store := &Store{
		token:   token,
		storage: storage,
		client:  client,
	}

	logrus.WithFields(logrus.Fields{
		"authenticated": store.Authenticated(),
	}).Debugln("Session store initialized")

	client.SetAuthorizationToken(token)

	return store, nil
}

func (s *Store) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token
}

func (s *Store) Authenticated() bool {
	return len(s.Token()) > 0
}

// SetToken moves the store to Authenticated for a non-empty value and to
// Anonymous for an empty one. Storage is written first so a failed write
// leaves the previous state untouched.
func (s *Store) SetToken(value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(value) > 0 {
		if err := s.storage.SetItem(TokenKey, value); err != nil {
			return fmt.Errorf("failed to persist token: %w", err)
		}
	} else {
		if err := s.storage.RemoveItem(TokenKey); err != nil {
			return fmt.Errorf("failed to remove token: %w", err)
		}
	}

	s.token = value
	s.client.SetAuthorizationToken(value)

	logrus.WithFields(logrus.Fields{
		"authenticated": len(value) > 0,
	}).Debugln("Session token updated")

	return nil
}
