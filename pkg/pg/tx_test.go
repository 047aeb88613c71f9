package pg_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netman-app/authkit/pkg/pg"
)

func TestWithTx(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE activations").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = pg.WithTx(context.Background(), db, nil, func(tx *sql.Tx) error {
			_, err := tx.Exec("UPDATE activations SET is_activated = true")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		want := errors.New("mail failed")
		err = pg.WithTx(context.Background(), db, nil, func(*sql.Tx) error { return want })
		assert.ErrorIs(t, err, want)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = pg.WithTx(context.Background(), db, nil, func(*sql.Tx) error { panic("boom") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

		called := false
		err = pg.WithTx(context.Background(), db, nil, func(*sql.Tx) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, pg.ErrTxFailed)
		assert.False(t, called)
	})

	t.Run("commit failure", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err = pg.WithTx(context.Background(), db, nil, func(*sql.Tx) error { return nil })
		assert.ErrorIs(t, err, pg.ErrTxFailed)
	})
}
