package inventory

import "context"

// Store is the persistence port for books.
type Store interface {
	// Create inserts a new book and returns its assigned id. New books start
	// available unless stated otherwise.
	Create(ctx context.Context, book Book) (int64, error)

	// Get returns a book by id, or ErrBookNotFound.
	Get(ctx context.Context, bookID int64) (Book, error)

	// Update replaces the descriptive fields of an existing book.
	Update(ctx context.Context, book Book) error

	// Delete removes a book. Deleting a book with an open loan fails with a
	// referential integrity error from the store.
	Delete(ctx context.Context, bookID int64) error

	// SetAvailability is an administrative override of the availability flag,
	// outside the loan state machine.
	SetAvailability(ctx context.Context, bookID int64, available bool) error

	// List returns books matching the filter, paginated and ordered by an
	// allow-listed sort key.
	List(ctx context.Context, filter Filter, page Page) ([]Book, error)
}
