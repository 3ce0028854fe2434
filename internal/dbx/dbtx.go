// Package dbx holds the small database plumbing the repositories share:
// the DBTX interface, which lets a repository run against either a plain
// connection or an open transaction, and WithTx for transactional work.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories need. *sql.DB and *sql.Tx both
// satisfy it, so the same repository code works inside and outside a
// transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics (the panic is rethrown). Used for
// multi-statement operations such as refresh token rotation, where the old
// token must be deleted and the new one stored atomically.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
