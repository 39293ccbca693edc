package auth_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-repository-bun"
	auth "github.com/merastore/go-auth"
)

// stubIdentity implements auth.Identity for token tests
type stubIdentity struct {
	id    string
	email string
	name  string
	role  string
}

func (s stubIdentity) ID() string    { return s.id }
func (s stubIdentity) Email() string { return s.email }
func (s stubIdentity) Name() string  { return s.name }
func (s stubIdentity) Role() string  { return s.role }

// memoryUserStore is an in-memory auth.UserStore shared by provider and
// guard tests
type memoryUserStore struct {
	mu       sync.Mutex
	users    map[string]*auth.User
	failWith error
	attempts map[string]int
	logins   map[string]int
}

func newMemoryUserStore(users ...*auth.User) *memoryUserStore {
	s := &memoryUserStore{
		users:    map[string]*auth.User{},
		attempts: map[string]int{},
		logins:   map[string]int{},
	}
	for _, u := range users {
		s.users[u.ID.String()] = u
	}
	return s
}

func (m *memoryUserStore) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	if u, ok := m.users[identifier]; ok {
		return u, nil
	}

	for _, u := range m.users {
		if u.Email == identifier {
			return u, nil
		}
	}

	return nil, repository.NewRecordNotFound()
}

func (m *memoryUserStore) GetActiveByID(ctx context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return nil, m.failWith
	}

	u, ok := m.users[id]
	if !ok || u.Status != auth.UserStatusActive {
		return nil, repository.NewRecordNotFound()
	}

	return u, nil
}

func (m *memoryUserStore) TrackAttemptedLogin(ctx context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[user.ID.String()]++
	user.LoginAttempts++
	return nil
}

func (m *memoryUserStore) TrackSuccessfulLogin(ctx context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[user.ID.String()]++
	user.LoginAttempts = 0
	return nil
}
