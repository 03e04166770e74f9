// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain persists the helpdesk credential in the OS credential store.
//
// The client keeps exactly one durable secret: the bearer token issued at login.
// It lives under a well-known key and is only ever replaced or removed as a whole.
// The package wraps github.com/99designs/keyring so the same code runs against the
// macOS Keychain, Windows Credential Manager, the Secret Service, pass, or an
// encrypted file, and against an in-memory ring in tests.
package keychain

import (
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"helpdesk/cli/internal/config"
	"helpdesk/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "helpdesk"

// KeyCredential is the well-known key of the persisted bearer credential.
const KeyCredential = "auth_token"

// Manager provides thread-safe access to the persisted credential.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// NewMemory returns a Manager backed by an in-memory keyring.
func NewMemory() *Manager {
	return New(keyring.NewArrayKeyring(nil))
}

// Open opens the OS keyring according to cfg.
func Open(cfg config.KeyringConfig) (*Manager, error) {
	ring, err := openRing(cfg)
	if err != nil {
		return nil, err
	}
	return New(ring), nil
}

// openRing opens the keyring with the configured backends, or the platform
// defaults followed by the encrypted file backend.
func openRing(cfg config.KeyringConfig) (keyring.Keyring, error) {
	allowed := make([]keyring.BackendType, 0, len(cfg.Backends))
	for _, b := range cfg.Backends {
		allowed = append(allowed, keyring.BackendType(b))
	}
	if len(allowed) == 0 {
		allowed = defaultBackends()
	}

	fileDir := cfg.FileDir
	if fileDir == "" {
		dir, err := xdg.ConfigDir()
		if err != nil {
			return nil, err
		}
		fileDir = filepath.Join(dir, "keyring")
	}

	kc := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowed,
		PassPrefix:              ServiceName,
		WinCredPrefix:           ServiceName,
		LibSecretCollectionName: ServiceName,
		FileDir:                 fileDir,
		FilePasswordFunc:        keyring.TerminalPrompt,
	}
	if cfg.Password != "" {
		kc.FilePasswordFunc = keyring.FixedStringPrompt(cfg.Password)
	}

	ring, err := keyring.Open(kc)
	if err != nil {
		if errors.Is(err, keyring.ErrNoAvailImpl) {
			return nil, errors.New("no secure storage backend available; set keyring.backends or HELPDESK_KEYRING_PASSWORD to use the file backend")
		}
		return nil, err
	}
	return ring, nil
}

func defaultBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend, keyring.FileBackend}
	}
}

// SaveCredential replaces the persisted credential.
func (m *Manager) SaveCredential(token string) error {
	if token == "" {
		return errors.New("refusing to store an empty credential")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         KeyCredential,
		Data:        []byte(token),
		Label:       "helpdesk credential",
		Description: "bearer token for the helpdesk service",
	})
}

// LoadCredential returns the persisted credential. A missing credential yields
// an empty string and no error.
func (m *Manager) LoadCredential() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyCredential)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(it.Data), nil
}

// ClearCredential removes the persisted credential. Removing a missing
// credential is not an error.
func (m *Manager) ClearCredential() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ring.Remove(KeyCredential)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
