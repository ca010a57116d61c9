package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidConfig is returned when the connection string cannot be parsed.
	ErrInvalidConfig = errors.New("pg.invalid_config")

	// ErrConnectionFailed is returned when the pool cannot be established
	// within the configured retry budget.
	ErrConnectionFailed = errors.New("pg.connection_failed")

	// ErrHealthcheckFailed is returned by the healthcheck closure when the
	// database is unreachable.
	ErrHealthcheckFailed = errors.New("pg.healthcheck_failed")

	// ErrMigrationFailed wraps any failure while applying schema migrations.
	ErrMigrationFailed = errors.New("pg.migration_failed")

	// ErrMigrationsPathMissing is returned when no migrations directory is
	// configured or it does not exist.
	ErrMigrationsPathMissing = errors.New("pg.migrations_path_missing")
)

// IsNotFound reports whether err is pgx's no-rows result, the uniform
// "not found" signal for single-row queries.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsTxClosed reports whether a closed transaction was used, which indicates a
// unit-of-work lifecycle bug rather than a data problem.
func IsTxClosed(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrTxClosed)
}

// IsDuplicateKey reports a unique constraint violation (SQLSTATE 23505).
func IsDuplicateKey(err error) bool {
	return hasSQLState(err, "23505")
}

// IsForeignKeyViolation reports a referential integrity violation
// (SQLSTATE 23503), e.g. a loan inserted for a book that vanished.
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, "23503")
}

// IsLockNotAvailable reports that a row lock could not be acquired
// (SQLSTATE 55P03), seen with NOWAIT locking clauses or lock_timeout.
func IsLockNotAvailable(err error) bool {
	return hasSQLState(err, "55P03")
}

// IsSerializationFailure reports a serialization conflict (SQLSTATE 40001);
// the unit of work was rolled back and may be retried.
func IsSerializationFailure(err error) bool {
	return hasSQLState(err, "40001")
}

func hasSQLState(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
