package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polytechlib/lending/svc/inventory"
)

func seedBooks(t *testing.T, store *inventory.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	books := []inventory.Book{
		{Title: "The Go Programming Language", Author: "Donovan", Available: true},
		{Title: "Designing Data-Intensive Applications", Author: "Kleppmann", Available: false},
		{Title: "Database Internals", Author: "Petrov", Available: true},
	}
	for _, b := range books {
		_, err := store.Create(ctx, b)
		require.NoError(t, err)
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	id, err := store.Create(ctx, inventory.Book{Title: "Database Internals", Author: "Petrov", Available: true})
	require.NoError(t, err)
	assert.Positive(t, id)

	book, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Database Internals", book.Title)
	assert.True(t, book.Available)
}

func TestMemoryStore_CreateValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	_, err := store.Create(ctx, inventory.Book{Author: "Petrov"})
	assert.ErrorIs(t, err, inventory.ErrInvalidBook)

	_, err = store.Create(ctx, inventory.Book{Title: "Untitled"})
	assert.ErrorIs(t, err, inventory.ErrInvalidBook)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	_, err := inventory.NewMemoryStore().Get(context.Background(), 9999)
	assert.ErrorIs(t, err, inventory.ErrBookNotFound)
}

func TestMemoryStore_UpdateDescriptiveFieldsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	id, err := store.Create(ctx, inventory.Book{Title: "Drafts", Author: "Anon", Available: true})
	require.NoError(t, err)

	// Update must not touch the availability flag, even when the caller's
	// struct carries a different value.
	err = store.Update(ctx, inventory.Book{ID: id, Title: "Final", Author: "Anon", Available: false})
	require.NoError(t, err)

	book, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Final", book.Title)
	assert.True(t, book.Available)
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	id, err := store.Create(ctx, inventory.Book{Title: "Ephemeral", Author: "Anon", Available: true})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	assert.ErrorIs(t, store.Delete(ctx, id), inventory.ErrBookNotFound)
}

func TestMemoryStore_SetAvailability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()

	id, err := store.Create(ctx, inventory.Book{Title: "Flagged", Author: "Anon", Available: true})
	require.NoError(t, err)

	require.NoError(t, store.SetAvailability(ctx, id, false))
	book, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, book.Available)

	assert.ErrorIs(t, store.SetAvailability(ctx, 9999, true), inventory.ErrBookNotFound)
}

func TestMemoryStore_ListFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()
	seedBooks(t, store)

	t.Run("availability filter", func(t *testing.T) {
		available := true
		books, err := store.List(ctx, inventory.Filter{Available: &available}, inventory.Page{})
		require.NoError(t, err)
		assert.Len(t, books, 2)
		for _, b := range books {
			assert.True(t, b.Available)
		}
	})

	t.Run("title substring is case-insensitive", func(t *testing.T) {
		books, err := store.List(ctx, inventory.Filter{Title: "database"}, inventory.Page{})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Database Internals", books[0].Title)
	})

	t.Run("author filter", func(t *testing.T) {
		books, err := store.List(ctx, inventory.Filter{Author: "klepp"}, inventory.Page{})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Kleppmann", books[0].Author)
	})
}

func TestMemoryStore_ListSortAndPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := inventory.NewMemoryStore()
	seedBooks(t, store)

	t.Run("sorted by title", func(t *testing.T) {
		books, err := store.List(ctx, inventory.Filter{}, inventory.Page{Sort: inventory.SortByTitle})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "Database Internals", books[0].Title)
		assert.Equal(t, "Designing Data-Intensive Applications", books[1].Title)
		assert.Equal(t, "The Go Programming Language", books[2].Title)
	})

	t.Run("unknown sort key falls back to id", func(t *testing.T) {
		books, err := store.List(ctx, inventory.Filter{}, inventory.Page{Sort: inventory.SortKey("pg_sleep(10)")})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, int64(1), books[0].ID)
	})

	t.Run("offset and limit", func(t *testing.T) {
		books, err := store.List(ctx, inventory.Filter{}, inventory.Page{Offset: 1, Limit: 1})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, int64(2), books[0].ID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		books, err := store.List(ctx, inventory.Filter{}, inventory.Page{Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}
