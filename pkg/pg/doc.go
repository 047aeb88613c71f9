// Package pg wires PostgreSQL into authkit.
//
// It owns the pgx connection pool and everything the rest of the module
// needs around it:
//
//   - Connect builds a *pgxpool.Pool from Config and pings it, retrying with
//     a linearly growing delay.
//   - OpenDB exposes the same pool as a *sql.DB for database/sql consumers
//     such as goose and the auth store.
//   - Migrate applies embedded goose migrations.
//   - WithTx runs a function in a transaction that is always released.
//   - Healthcheck returns a readiness probe.
//
// Helpers in errors.go (IsNotFoundError, IsDuplicateKeyError,
// IsForeignKeyViolationError, ConstraintName) classify driver errors so that
// repositories can translate them into domain errors.
//
// # Usage
//
//	pool, err := pg.Connect(ctx, cfg.PG)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	db := pg.OpenDB(pool)
//	defer db.Close()
//
//	if err := pg.Migrate(ctx, db, migrations.FS, cfg.PG, log); err != nil {
//	    return err
//	}
//
// Transactions:
//
//	err := pg.WithTx(ctx, db, nil, func(tx *sql.Tx) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM tokens WHERE users_id = $1", id)
//	    return err
//	})
//
// Error classification:
//
//	if pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == "users_email_key" {
//	    // email already registered
//	}
//
// # Configuration
//
// Config is parsed from PG_* environment variables. PG_CONN_URL is required;
// pool sizing, retry and the goose migrations table have defaults.
//
// # Errors
//
// Failures are reported as package sentinels (ErrEmptyConnectionString,
// ErrFailedToOpenDBConnection, ErrFailedToApplyMigrations, ErrTxFailed,
// ErrHealthcheckFailed) joined with the driver error.
package pg
