package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	auth "github.com/merastore/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuther_LoginAndSessionRoundTrip(t *testing.T) {
	ctx := context.Background()

	user := newActiveUser(t, "dave@example.com", "sekrit123")
	store := newMemoryUserStore(user)
	provider := auth.NewUserProvider(store)

	auther := auth.NewAuthenticator(provider, auth.DefaultConfig("test-signing-key"))

	token, err := auther.Login(ctx, "dave@example.com", "sekrit123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := auther.SessionFromToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), session.GetUserID())
	assert.Equal(t, user.Email, session.GetEmail())
	assert.Equal(t, user.Name, session.GetName())
	assert.Equal(t, string(auth.RoleCustomer), session.GetRole())
	assert.Equal(t, "merastore", session.GetIssuer())

	id, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	require.NotNil(t, session.GetExpiration())
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), *session.GetExpiration(), time.Minute)

	identity, err := auther.IdentityFromSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), identity.ID())
}

func TestAuther_LoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()

	user := newActiveUser(t, "dave@example.com", "sekrit123")
	provider := auth.NewUserProvider(newMemoryUserStore(user))
	auther := auth.NewAuthenticator(provider, auth.DefaultConfig("test-signing-key"))

	_, err := auther.Login(ctx, "dave@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)

	_, err = auther.Login(ctx, "nobody@example.com", "sekrit123")
	assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
}

func TestAuther_SessionFromTokenRejectsForeignSigner(t *testing.T) {
	user := newActiveUser(t, "dave@example.com", "sekrit123")
	provider := auth.NewUserProvider(newMemoryUserStore(user))

	auther := auth.NewAuthenticator(provider, auth.DefaultConfig("test-signing-key"))
	foreign := auth.NewTokenService([]byte("other-key"), 0, "merastore", nil, nil)

	token, err := foreign.Generate(auth.NewIdentityFromUser(user))
	require.NoError(t, err)

	_, err = auther.SessionFromToken(token)
	assert.True(t, auth.IsMalformedError(err))
}

func TestContextPlumbing(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.FromContext(ctx)
	assert.False(t, ok)

	_, ok = auth.GetClaims(ctx)
	assert.False(t, ok)

	user := &auth.User{ID: uuid.New(), Email: "eve@example.com"}
	claims := &auth.SessionClaims{UID: user.ID.String(), UserEmail: user.Email, UserRole: string(auth.RoleAdmin)}

	ctx = auth.WithContext(ctx, user)
	ctx = auth.WithClaimsContext(ctx, claims)

	gotUser, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user.ID, gotUser.ID)

	gotClaims, ok := auth.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), gotClaims.UserID())
}
