package pg

import "time"

// Config controls the connection pool and migration runner. All values come
// from the environment so deployments can be tuned without code changes.
type Config struct {
	// ConnectionString is the PostgreSQL connection URL.
	ConnectionString string `env:"PG_CONN_URL,required"`

	// MaxOpenConns caps concurrent connections; loan transactions hold row
	// locks, so the cap also bounds how many units of work run at once.
	MaxOpenConns int32 `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	// MinIdleConns keeps warm connections for bursty request patterns.
	MinIdleConns int32 `env:"PG_MIN_IDLE_CONNS" envDefault:"2"`

	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	// RetryAttempts and RetryInterval control startup connection retries.
	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`

	// MigrationsPath points at the goose SQL migrations directory.
	MigrationsPath string `env:"PG_MIGRATIONS_PATH" envDefault:"migrations"`
	// MigrationsTable stores the applied migration versions.
	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
