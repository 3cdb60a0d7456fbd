// Package store holds the two pieces of client-side state that outlive a
// single operation: the bearer credential (durable) and the in-flight payment
// payload (session-scoped).
package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CredentialStore persists the bearer token between runs.
type CredentialStore interface {
	Token() (string, bool)
	SetToken(token string) error
	Clear() error
}

// FileCredentials keeps the token in a single file, mode 0600.
type FileCredentials struct {
	mu   sync.Mutex
	path string
}

func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{path: path}
}

func (f *FileCredentials) Token() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(b))
	return tok, tok != ""
}

func (f *FileCredentials) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token+"\n"), 0o600)
}

func (f *FileCredentials) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemCredentials is the in-memory variant used by tests and the mock backend.
type MemCredentials struct {
	mu  sync.Mutex
	tok string
}

func NewMemCredentials() *MemCredentials { return &MemCredentials{} }

func (m *MemCredentials) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, m.tok != ""
}

func (m *MemCredentials) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = token
	return nil
}

func (m *MemCredentials) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = ""
	return nil
}
