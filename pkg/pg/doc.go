// Package pg connects to PostgreSQL through a pgx connection pool and applies
// embedded goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, onboarding.Migrations, log); err != nil {
//	    return err
//	}
package pg
