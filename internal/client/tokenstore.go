package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "todoctl"
	keyringUser    = "session-token"
)

// ErrNoToken means no session is stored
var ErrNoToken = errors.New("not logged in")

// TokenStore persists the session token between invocations
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// KeyringStore keeps the token in the OS keyring and falls back to a
// 0600 file when no keyring is available (headless systems)
type KeyringStore struct {
	FallbackPath string
}

// NewKeyringStore stores the fallback file under dir
func NewKeyringStore(dir string) *KeyringStore {
	return &KeyringStore{FallbackPath: filepath.Join(dir, ".session")}
}

// Save implements TokenStore
func (s *KeyringStore) Save(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err == nil {
		_ = os.Remove(s.FallbackPath)
		return nil
	}
	return (&FileStore{Path: s.FallbackPath}).Save(token)
}

// Load implements TokenStore
func (s *KeyringStore) Load() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil && token != "" {
		return token, nil
	}
	return (&FileStore{Path: s.FallbackPath}).Load()
}

// Clear implements TokenStore
func (s *KeyringStore) Clear() error {
	// an unavailable keyring leaves only the fallback file to remove
	_ = keyring.Delete(keyringService, keyringUser)
	return (&FileStore{Path: s.FallbackPath}).Clear()
}

// FileStore keeps the token in a single file
type FileStore struct {
	Path string
}

// Save implements TokenStore
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Load implements TokenStore
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear implements TokenStore
func (s *FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
