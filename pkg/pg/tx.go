package pg

import (
	"context"
	"database/sql"
	"errors"
)

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on every other exit, including panics.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return errors.Join(ErrTxFailed, err)
	}
	// Rollback after a successful Commit returns sql.ErrTxDone and is ignored.
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Join(ErrTxFailed, err)
	}
	return nil
}
