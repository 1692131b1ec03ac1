package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small durable key-value contract scoped to one client.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Backend names accepted by Open.
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend        string
	Dir            string // file backend
	KeyringService string // keyring backend
}

// Open returns the configured backend.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		fs, err := OpenFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendKeyring:
		return NewKeyringStore(cfg.KeyringService), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
