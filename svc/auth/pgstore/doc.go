// Package pgstore implements auth.Store on PostgreSQL.
//
// Every use case runs in one database transaction opened by Store.InTx.
// Per-identity serialization uses transaction-scoped advisory locks, so no
// lock outlives the transaction that took it. The schema lives in the
// migrations subpackage and is applied with pg.Migrate:
//
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//	store := pgstore.New(db)
package pgstore
