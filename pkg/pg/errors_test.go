package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/polytechlib/lending/pkg/pg"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFound(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFound(fmt.Errorf("query book: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFound(nil))
	assert.False(t, pg.IsNotFound(errors.New("other")))
}

func TestIsTxClosed(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsTxClosed(pgx.ErrTxClosed))
	assert.False(t, pg.IsTxClosed(nil))
}

func TestSQLStateClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		code  string
		check func(error) bool
	}{
		{"duplicate key", "23505", pg.IsDuplicateKey},
		{"foreign key violation", "23503", pg.IsForeignKeyViolation},
		{"lock not available", "55P03", pg.IsLockNotAvailable},
		{"serialization failure", "40001", pg.IsSerializationFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &pgconn.PgError{Code: tt.code}
			assert.True(t, tt.check(err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", err)))
			assert.False(t, tt.check(nil))
			assert.False(t, tt.check(&pgconn.PgError{Code: "42601"}))
		})
	}
}
