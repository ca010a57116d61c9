package inventory

import "errors"

var (
	// ErrBookNotFound is returned when the referenced book does not exist.
	ErrBookNotFound = errors.New("inventory.book_not_found")

	// ErrInvalidBook is returned when a book with an empty title or author is
	// written.
	ErrInvalidBook = errors.New("inventory.invalid_book")

	// ErrBookReferenced is returned when deleting a book that loan records
	// still reference.
	ErrBookReferenced = errors.New("inventory.book_referenced")

	// ErrStorageFailure wraps infrastructure errors from the underlying store.
	ErrStorageFailure = errors.New("inventory.storage_failure")
)
