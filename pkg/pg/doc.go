// Package pg connects to PostgreSQL through a pgx pool and applies goose
// migrations from an fs.FS (usually the embedded db/migrations package).
//
//	pool, err := pg.Connect(ctx, cfg.PG)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg.PG, log); err != nil {
//	    return err
//	}
package pg
