package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Principal is the cached identity snapshot kept next to the token. It
// is a convenience copy; the server re-resolves the live record on every
// authenticated request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is the client-held record: the raw session token and the
// principal snapshot captured at login.
type Session struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
}

// SessionStore persists the client session record. Implementations must
// tolerate concurrent use from a single process.
type SessionStore interface {
	Save(s Session) error
	Load() (*Session, error)
	Clear() error
}

// ErrNoSession is returned by Load when no session is held
var ErrNoSession = errors.New("no session")

// MemoryStore keeps the session in process memory. Suitable for tests
// and short lived tools.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return nil, ErrNoSession
	}

	copy := *m.session
	return &copy, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// FileStore persists the session as a JSON file, created 0600 since it
// holds a live credential.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) Load() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	session := &Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}

	if session.Token == "" {
		return nil, ErrNoSession
	}

	return session, nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
