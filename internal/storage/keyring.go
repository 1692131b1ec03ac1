package storage

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the service name used in the OS credential store.
const DefaultKeyringService = "hackboard"

// KeyringStore keeps values in the OS credential store (Secret Service,
// Keychain, Windows Credential Manager). The key is used as the account name.
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringStore{service: service}
}

func (s *KeyringStore) Get(key string) (string, error) {
	v, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("storage: keyring get %s: %w", key, err)
	}
	return v, nil
}

func (s *KeyringStore) Set(key, value string) error {
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("storage: keyring set %s: %w", key, err)
	}
	return nil
}
