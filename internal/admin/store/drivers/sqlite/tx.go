package sqlite

import (
	"context"
	"database/sql"

	"github.com/hallgate/adminbase/internal/admin/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Users() store.Users       { return &usersRepo{db: t.tx} }
func (t *txStore) Activity() store.Activity { return &activityRepo{db: t.tx} }
func (t *txStore) Settings() store.Settings { return &settingsRepo{db: t.tx} }

func (t *txStore) Close() error { return nil } // outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx starts

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested transactions are not supported.
	return sql.ErrTxDone
}
