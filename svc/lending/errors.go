package lending

import "errors"

// Domain rejections: expected outcomes of valid commands hitting a business
// rule. Callers branch on these with errors.Is.
var (
	// ErrBookNotFound is returned when the command references a book that
	// does not exist.
	ErrBookNotFound = errors.New("lending.book_not_found")

	// ErrBookNotAvailable is returned when the book is already on loan.
	ErrBookNotAvailable = errors.New("lending.book_not_available")

	// ErrLoanNotFound is returned when the referenced loan does not exist.
	ErrLoanNotFound = errors.New("lending.loan_not_found")

	// ErrLoanAlreadyReturned is returned when returning a loan whose status
	// is terminal.
	ErrLoanAlreadyReturned = errors.New("lending.loan_already_returned")

	// ErrForbidden is returned when the caller's role does not permit the
	// requested command; the engine is never invoked.
	ErrForbidden = errors.New("lending.forbidden")

	// ErrInvalidDueDate is returned when the supplied due date is not an
	// interpretable calendar date.
	ErrInvalidDueDate = errors.New("lending.invalid_due_date")
)

// ErrStorageFailure wraps infrastructure failures (connectivity loss,
// constraint violations, lock timeouts) after the unit of work has been
// rolled back. The underlying cause is logged, not exposed.
var ErrStorageFailure = errors.New("lending.storage_failure")
