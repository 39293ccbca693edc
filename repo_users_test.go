package auth_test

import (
	"context"
	"database/sql"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	auth "github.com/merastore/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const sqliteCreateUsers = `CREATE TABLE users (
    id TEXT NOT NULL PRIMARY KEY,
    user_role TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone_number TEXT,
    password_hash TEXT,
    status TEXT NOT NULL,
    store_name TEXT,
    store_address TEXT,
    login_attempts INTEGER NOT NULL DEFAULT 0,
    login_attempt_at TIMESTAMP NULL,
    loggedin_at TIMESTAMP NULL,
    metadata TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    deleted_at TIMESTAMP NULL
);`

func setupUsersRepo(t *testing.T) (auth.Users, *bun.DB) {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec(sqliteCreateUsers)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = bunDB.Close()
		_ = db.Close()
	})

	return auth.NewUsersRepository(bunDB), bunDB
}

func seedUser(t *testing.T, repo auth.Users, user *auth.User) *auth.User {
	t.Helper()
	created, err := repo.Register(context.Background(), user)
	require.NoError(t, err)
	return created
}

func TestUsersRepository_Register(t *testing.T) {
	repo, _ := setupUsersRepo(t)
	ctx := context.Background()

	created, err := repo.Register(ctx, &auth.User{
		Name:         "Frank",
		Email:        "  Frank@Example.COM ",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, auth.RoleCustomer, created.Role)
	assert.Equal(t, auth.UserStatusActive, created.Status)
	assert.Equal(t, "frank@example.com", created.Email)
}

func TestUsersRepository_GetByIdentifier(t *testing.T) {
	repo, _ := setupUsersRepo(t)
	ctx := context.Background()

	created := seedUser(t, repo, &auth.User{
		Name:         "Grace",
		Email:        "grace@example.com",
		PasswordHash: "x",
	})

	t.Run("by email", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, "grace@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByIdentifier(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)
	})

	t.Run("miss", func(t *testing.T) {
		_, err := repo.GetByIdentifier(ctx, "nobody@example.com")
		assert.True(t, goerrors.IsNotFound(err))
	})
}

func TestUsersRepository_GetActiveByID(t *testing.T) {
	repo, _ := setupUsersRepo(t)
	ctx := context.Background()

	active := seedUser(t, repo, &auth.User{
		Name:         "Heidi",
		Email:        "heidi@example.com",
		PasswordHash: "x",
	})
	suspended := seedUser(t, repo, &auth.User{
		Name:         "Ivan",
		Email:        "ivan@example.com",
		PasswordHash: "x",
		Status:       auth.UserStatusSuspended,
	})

	got, err := repo.GetActiveByID(ctx, active.ID.String())
	require.NoError(t, err)
	assert.Equal(t, active.Email, got.Email)

	_, err = repo.GetActiveByID(ctx, suspended.ID.String())
	assert.True(t, goerrors.IsNotFound(err))

	_, err = repo.GetActiveByID(ctx, uuid.NewString())
	assert.True(t, goerrors.IsNotFound(err))
}

func TestUsersRepository_LoginTracking(t *testing.T) {
	repo, _ := setupUsersRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, &auth.User{
		Name:         "Judy",
		Email:        "judy@example.com",
		PasswordHash: "x",
	})

	require.NoError(t, repo.TrackAttemptedLogin(ctx, user))

	got, err := repo.GetByIdentifier(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, got.LoginAttempts)
	assert.NotNil(t, got.LoginAttemptAt)

	require.NoError(t, repo.TrackSuccessfulLogin(ctx, got))

	got, err = repo.GetByIdentifier(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, got.LoginAttempts)
	assert.Nil(t, got.LoginAttemptAt)
	assert.NotNil(t, got.LoggedInAt)
}

func TestUsersRepository_StatusLifecycle(t *testing.T) {
	repo, _ := setupUsersRepo(t)
	ctx := context.Background()

	user := seedUser(t, repo, &auth.User{
		Name:         "Mallory",
		Email:        "mallory@example.com",
		PasswordHash: "x",
	})

	updated, err := repo.Suspend(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, auth.UserStatusSuspended, updated.Status)

	user.Status = auth.UserStatusSuspended
	updated, err = repo.Reinstate(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, auth.UserStatusActive, updated.Status)

	t.Run("banned is terminal", func(t *testing.T) {
		banned := seedUser(t, repo, &auth.User{
			Name:         "Niaj",
			Email:        "niaj@example.com",
			PasswordHash: "x",
			Status:       auth.UserStatusBanned,
		})

		_, err := repo.Reinstate(ctx, banned)
		require.Error(t, err)

		var richErr *goerrors.Error
		require.ErrorAs(t, err, &richErr)
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	})

	t.Run("pending cannot be suspended", func(t *testing.T) {
		pending := seedUser(t, repo, &auth.User{
			Name:         "Olivia",
			Email:        "olivia@example.com",
			PasswordHash: "x",
			Status:       auth.UserStatusPending,
		})

		_, err := repo.Suspend(ctx, pending)
		require.Error(t, err)
	})
}
