// Package session persists the signed-in user in the OS keyring and keeps
// its ID token fresh.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"

	"planify/internal/config"
	"planify/internal/event"
	"planify/internal/service"
)

const (
	serviceName = "planify"

	// Key is the keyring entry holding the serialized session.
	Key = "@user"
)

// Open returns a Store backed by the OS keyring, or by an encrypted file
// under the config dir when cfg.Keyring.Backend is "file".
func Open(cfg *config.Config) (*Store, error) {
	backends := []keyring.BackendType{
		keyring.KeychainBackend,
		keyring.SecretServiceBackend,
		keyring.KWalletBackend,
		keyring.WinCredBackend,
		keyring.PassBackend,
		keyring.FileBackend,
	}
	if cfg.Keyring.Backend == "file" {
		backends = []keyring.BackendType{keyring.FileBackend}
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              serviceName,
		AllowedBackends:          backends,
		FileDir:                  cfg.KeyringDir(),
		FilePasswordFunc:         keyring.FixedStringPrompt(serviceName + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewStore(ring), nil
}

// Store reads and writes the session blob. Writes are last-writer-wins.
type Store struct {
	ring keyring.Keyring

	mu      sync.Mutex
	changes event.Bus[*service.SessionUser]
}

// NewStore wraps ring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Load returns the stored credential, or nil if nobody is signed in.
func (s *Store) Load() (*service.Credential, error) {
	item, err := s.ring.Get(Key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting session %q: %w", Key, err)
	}

	var cred service.Credential
	if err := json.Unmarshal(item.Data, &cred); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &cred, nil
}

// Save stores cred and notifies subscribers.
func (s *Store) Save(cred service.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	s.mu.Lock()
	err = s.ring.Set(keyring.Item{
		Key:         Key,
		Data:        data,
		Label:       "Planify session",
		Description: cred.User.Email,
	})
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("setting session %q: %w", Key, err)
	}

	user := cred.User
	s.changes.Publish(&user)
	return nil
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	err := s.ring.Remove(Key)
	s.mu.Unlock()
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting session %q: %w", Key, err)
	}
	s.changes.Publish(nil)
	return nil
}

// OnChange subscribes fn to sign-in and sign-out. fn receives nil on sign-out.
func (s *Store) OnChange(fn func(*service.SessionUser)) *event.Subscription {
	return s.changes.Subscribe(fn)
}
