package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Credential store keys
const (
	storeKeyToken = "token"
	storeKeyUser  = "user"
)

// Session holds the in-memory authentication state shared with the Client
type Session struct {
	mu    sync.RWMutex
	token string
	user  User
}

// Token returns the bearer token, or empty when not authenticated
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated profile
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated returns true when a token is held
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) set(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
}

// FileStore is a file-backed credential store. It holds flat string
// key/value pairs in a JSON file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore opens or creates a credential store at the given path
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			// A corrupt store is treated as empty
			s.values = make(map[string]string)
		}
	}
	return s, nil
}

// Get returns a stored value
func (s *FileStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set stores a value and persists the file
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// Delete removes keys and persists the file
func (s *FileStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return s.flush()
}

func (s *FileStore) flush() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// SessionManager drives login, restore and logout against the credential
// store and the backend.
type SessionManager struct {
	store   *FileStore
	client  *Client
	session *Session
}

// NewSessionManager creates a session manager over the given store,
// client and shared session
func NewSessionManager(store *FileStore, client *Client, session *Session) *SessionManager {
	return &SessionManager{
		store:   store,
		client:  client,
		session: session,
	}
}

// Login authenticates and persists the session
func (m *SessionManager) Login(ctx context.Context, username, password string) (*User, error) {
	result, err := m.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	m.session.set(result.AccessToken, result.User)

	profile, err := json.Marshal(result.User)
	if err == nil {
		// Best effort; an unwritable store only loses the saved session
		if err := m.store.Set(storeKeyToken, result.AccessToken); err == nil {
			_ = m.store.Set(storeKeyUser, string(profile))
		}
	}

	user := result.User
	return &user, nil
}

// Restore loads a persisted session and revalidates it against the
// backend. A stale or missing session clears the store and returns
// ErrUnauthorized.
func (m *SessionManager) Restore(ctx context.Context) (*User, error) {
	token := m.store.Get(storeKeyToken)
	if token == "" {
		return nil, ErrUnauthorized
	}

	m.session.set(token, User{})

	user, err := m.client.Me(ctx)
	if err != nil {
		m.session.clear()
		if errors.Is(err, ErrUnauthorized) {
			_ = m.store.Delete(storeKeyToken, storeKeyUser)
		}
		return nil, err
	}

	m.session.set(token, *user)
	profile, marshalErr := json.Marshal(user)
	if marshalErr == nil {
		_ = m.store.Set(storeKeyUser, string(profile))
	}
	return user, nil
}

// Logout clears the session everywhere. It is idempotent and ignores
// backend failures; the token is discarded regardless.
func (m *SessionManager) Logout(ctx context.Context) {
	if m.session.Authenticated() {
		_ = m.client.Logout(ctx)
	}
	m.session.clear()
	_ = m.store.Delete(storeKeyToken, storeKeyUser)
}

// Session returns the shared session
func (m *SessionManager) Session() *Session {
	return m.session
}
