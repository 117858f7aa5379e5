package gradeauth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultTokenKey is the single key both storage scopes are addressed by.
const DefaultTokenKey = "auth-token"

// Scope identifies a persistence lifetime class for the token.
type Scope int

const (
	// ScopeSession holds the token until the process (or tab) goes away.
	ScopeSession Scope = iota
	// ScopePersistent holds the token across sessions ("remember me").
	ScopePersistent
)

func (s Scope) String() string {
	switch s {
	case ScopeSession:
		return "session"
	case ScopePersistent:
		return "persistent"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// TokenStore is a storage adapter over two independent key-value scopes.
// At most one scope holds a token at a time: saving to one scope deletes
// the entry in the other. No network or parsing logic lives here beyond the
// well-formedness check on Load.
type TokenStore struct {
	session    Storage
	persistent Storage
	codec      *TokenCodec
	key        string
	logger     Logger
}

type StoreOption func(*TokenStore)

// WithTokenKey overrides the storage key name
func WithTokenKey(key string) StoreOption {
	return func(s *TokenStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStoreLogger sets the store logger
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *TokenStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewTokenStore returns a TokenStore over the given session and persistent
// scope adapters.
func NewTokenStore(session, persistent Storage, codec *TokenCodec, opts ...StoreOption) *TokenStore {
	if codec == nil {
		codec = NewTokenCodec()
	}

	s := &TokenStore{
		session:    session,
		persistent: persistent,
		codec:      codec,
		key:        DefaultTokenKey,
		logger:     defLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Save writes the raw token into exactly one scope. With remember the token
// goes to the persistent scope and any session-scope entry is deleted; the
// mirror happens otherwise.
func (s *TokenStore) Save(rawToken string, remember bool) error {
	target, other := s.session, s.persistent
	if remember {
		target, other = s.persistent, s.session
	}

	if err := target.Set(s.key, rawToken); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write token to storage")
	}

	if err := other.Delete(s.key); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear sibling token scope")
	}

	return nil
}

// Load returns the first well-formed token, checking the session scope
// before the persistent one. ErrNoToken when neither scope has one.
func (s *TokenStore) Load() (string, error) {
	for _, scope := range []struct {
		name    Scope
		storage Storage
	}{
		{ScopeSession, s.session},
		{ScopePersistent, s.persistent},
	} {
		raw, err := scope.storage.Get(s.key)
		if err != nil {
			s.logger.Error("token read from %s scope failed: %v", scope.name, err)
			continue
		}
		if raw == "" {
			continue
		}
		if !s.codec.IsWellFormed(raw) {
			s.logger.Debug("ignoring malformed token in %s scope", scope.name)
			continue
		}
		return raw, nil
	}

	return "", ErrNoToken
}

// Clear deletes the token entry from both scopes unconditionally.
func (s *TokenStore) Clear() error {
	var firstErr error
	for _, storage := range []Storage{s.session, s.persistent} {
		if err := storage.Delete(s.key); err != nil && firstErr == nil {
			firstErr = goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear token scope")
		}
	}
	return firstErr
}

// MemoryStorage is the session-scope adapter: entries live until the
// process exits.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStorage returns an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

const (
	defaultConfigDir = "gradeauth"
	storageFileName  = "tokens.json"
	filePermissions  = 0600
	dirPermissions   = 0700
)

// FileStorage is a durable scope adapter: a small JSON file of key-value
// entries under the user config directory, readable only by the owner.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage places the storage file under XDG_CONFIG_HOME (or
// ~/.config) in the gradeauth directory.
func NewFileStorage() (*FileStorage, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "cannot determine home directory")
		}
		configHome = filepath.Join(home, ".config")
	}

	return NewFileStorageAt(filepath.Join(configHome, defaultConfigDir, storageFileName)), nil
}

// NewFileStorageAt uses an explicit file path.
func NewFileStorageAt(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return "", err
	}
	return entries[key], nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	entries[key] = value
	return f.write(entries)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return f.write(entries)
}

func (f *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "cannot read token storage file")
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "cannot parse token storage file")
	}
	return entries, nil
}

func (f *FileStorage) write(entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), dirPermissions); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot create storage directory")
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot encode token storage file")
	}

	return os.WriteFile(f.path, data, filePermissions)
}
