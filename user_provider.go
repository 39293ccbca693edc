package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// UserStore is the slice of the Users repository the provider needs
type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error)
	GetActiveByID(ctx context.Context, id string) (*User, error)
	TrackAttemptedLogin(ctx context.Context, user *User) error
	TrackSuccessfulLogin(ctx context.Context, user *User) error
}

// MaxLoginAttempts is the maximum number of attempts a user gets in a
// cool down period
var MaxLoginAttempts = 5

// CoolDownPeriod is the window in which attempts are counted
var CoolDownPeriod = 24 * time.Hour

// UserProvider verifies credentials against the user store and resolves
// token claims to live records.
type UserProvider struct {
	store     UserStore
	Validator func(*User) error
	logger    Logger
}

var (
	_ IdentityProvider  = (*UserProvider)(nil)
	_ PrincipalResolver = (*UserProvider)(nil)
)

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:     store,
		logger:    defLogger{},
		Validator: defaultUserValidator,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

func (u *UserProvider) validate(user *User) error {
	if u.Validator != nil {
		return u.Validator(user)
	}
	return defaultUserValidator(user)
}

// VerifyIdentity will find the user, compare the password, and return
// the identity. Unknown identifiers and wrong passwords produce the same
// error so callers cannot probe for accounts.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	if user.LoginAttemptAt != nil && time.Since(*user.LoginAttemptAt) > CoolDownPeriod {
		user.LoginAttempts = 0
	}

	// too many attempts in the window, cool off
	if user.LoginAttempts > MaxLoginAttempts {
		return nil, ErrTooManyLoginAttempts
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if err2 := u.store.TrackAttemptedLogin(ctx, user); err2 != nil {
			return nil, errors.Wrap(err2, errors.CategoryInternal, "failed to track login attempt")
		}
		return nil, err
	}

	if !user.IsActive() {
		return nil, ErrUserNotFound
	}

	if err := u.store.TrackSuccessfulLogin(ctx, user); err != nil {
		u.logger.Warn("failed to track successful login", "error", err)
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByIdentifier retrieves an identity without checking credentials
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	return NewIdentityFromUser(user), nil
}

// ResolveActiveUser fetches the live record for the given user id,
// requiring active status. A miss, a suspended account, and a deleted
// account are indistinguishable to the caller.
func (u *UserProvider) ResolveActiveUser(ctx context.Context, id string) (*User, error) {
	user, err := u.store.GetActiveByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, ErrAuthenticationFailed.Category, ErrAuthenticationFailed.Message).
			WithTextCode(ErrAuthenticationFailed.TextCode)
	}

	return user, nil
}

func defaultUserValidator(user *User) error {
	if user == nil {
		return ErrIdentityNotFound
	}

	if user.PasswordHash == "" {
		return ErrMismatchedHashAndPassword
	}

	return nil
}
