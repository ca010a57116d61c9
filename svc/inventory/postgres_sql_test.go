package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The builders are tested as pure functions: given inputs, the generated SQL
// must carry the right predicates and a safe ORDER BY.

func TestBuildListBooksSQL(t *testing.T) {
	t.Parallel()

	t.Run("no filter", func(t *testing.T) {
		t.Parallel()

		query, err := buildListBooksSQL(Filter{}, Page{}.clamp())
		require.NoError(t, err)
		assert.Contains(t, query, `FROM "books"`)
		assert.Contains(t, query, `ORDER BY "book_id" ASC`)
		assert.Contains(t, query, `LIMIT 10`)
		assert.NotContains(t, query, "WHERE")
	})

	t.Run("all filters applied", func(t *testing.T) {
		t.Parallel()

		available := true
		query, err := buildListBooksSQL(Filter{Available: &available, Title: "go", Author: "don"}, Page{}.clamp())
		require.NoError(t, err)
		assert.Contains(t, query, `"available" IS TRUE`)
		assert.Contains(t, query, `"title" ILIKE '%go%'`)
		assert.Contains(t, query, `"author" ILIKE '%don%'`)
	})

	t.Run("unsafe sort key never reaches the query", func(t *testing.T) {
		t.Parallel()

		page := Page{Sort: SortKey("title; DROP TABLE books")}.clamp()
		query, err := buildListBooksSQL(Filter{}, page)
		require.NoError(t, err)
		assert.Contains(t, query, `ORDER BY "book_id" ASC`)
		assert.NotContains(t, query, "DROP TABLE")
	})

	t.Run("offset and limit clamped", func(t *testing.T) {
		t.Parallel()

		page := Page{Offset: 20, Limit: 500}.clamp()
		query, err := buildListBooksSQL(Filter{}, page)
		require.NoError(t, err)
		assert.Contains(t, query, `LIMIT 100`)
		assert.Contains(t, query, `OFFSET 20`)
	})
}

func TestBuildCreateBookSQL(t *testing.T) {
	t.Parallel()

	query, err := buildCreateBookSQL(Book{Title: "T", Author: "A", Available: true})
	require.NoError(t, err)
	assert.Contains(t, query, `INSERT INTO "books"`)
	assert.Contains(t, query, `RETURNING "book_id"`)
}

func TestBuildUpdateBookSQL_OmitsAvailability(t *testing.T) {
	t.Parallel()

	query, err := buildUpdateBookSQL(Book{ID: 3, Title: "T", Author: "A", Available: false})
	require.NoError(t, err)
	assert.Contains(t, query, `UPDATE "books"`)
	// Availability transitions belong to the loan engine, not Update.
	assert.NotContains(t, query, `"available"`)
}

func TestBuildSetAvailabilitySQL(t *testing.T) {
	t.Parallel()

	query, err := buildSetAvailabilitySQL(5, false)
	require.NoError(t, err)
	assert.Contains(t, query, `"available"=FALSE`)
	assert.Contains(t, query, `"book_id" = 5`)
}
