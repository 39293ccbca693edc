package auth

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// RepositoryManager groups the stores the auth subsystem writes to and
// provides transaction scoping for multi-step operations.
type RepositoryManager interface {
	Users() Users
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type repoManager struct {
	db    *bun.DB
	users Users
}

// NewRepositoryManager wires the repositories to a bun database handle
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &repoManager{
		db:    db,
		users: NewUsersRepository(db),
	}
}

func (m *repoManager) Users() Users {
	return m.users
}

func (m *repoManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return m.db.RunInTx(ctx, opts, f)
}
