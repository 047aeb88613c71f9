package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/netman-app/authkit/pkg/pg"
	"github.com/netman-app/authkit/svc/auth"
)

// Store implements auth.Store over a database/sql handle backed by pgx.
type Store struct {
	db *sql.DB
}

var _ auth.Store = (*Store)(nil)

// New returns a Store using db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn in a read-committed transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx auth.Tx) error) error {
	return pg.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		return fn(&txn{q: tx})
	})
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txn struct {
	q querier
}

func (t *txn) LockIdentity(ctx context.Context, identityID int64) error {
	if _, err := t.q.ExecContext(ctx, qLockIdentity, identityID); err != nil {
		return fmt.Errorf("lock identity %d: %w", identityID, err)
	}
	return nil
}

func (t *txn) Identities() auth.IdentityRepository { return identities{t.q} }
func (t *txn) Grants() auth.GrantRepository { return grants{t.q} }
func (t *txn) Sessions() auth.SessionStore { return sessions{t.q} }
func (t *txn) Activations() auth.ActivationRepository { return activations{t.q} }

// mapErr translates driver errors into the store contract errors.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case pg.IsNotFoundError(err):
		return auth.ErrRecordNotFound
	case pg.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s", auth.ErrDuplicate, pg.ConstraintName(err))
	default:
		return err
	}
}

// execOne runs a statement that must affect exactly one row.
func execOne(ctx context.Context, q querier, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auth.ErrRecordNotFound
	}
	return nil
}
