// Package pg owns the process-wide PostgreSQL connection pool for the lending
// service.
//
// The pool is constructed once during startup via Connect, injected into the
// storage layers that need it, and closed on shutdown. Business logic never
// reaches for an ambient singleton.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
//
// Connect retries with linear back-off so a service starting alongside its
// database does not flap. Migrate runs goose migrations over the same pool,
// bridged through pgx's database/sql adapter. Error helpers (IsNotFound,
// IsDuplicateKey, IsLockNotAvailable, IsSerializationFailure, ...) classify
// pgx errors so storage code can map them onto domain results.
package pg
