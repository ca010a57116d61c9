package lending

import (
	"context"
	"time"
)

// Storage is the persistence handle the engine runs against: atomic units of
// work with row-scoped exclusive locks, plus the ledger's read side.
type Storage interface {
	// InTx runs fn inside one atomic unit of work. The unit commits when fn
	// returns nil and rolls back when it returns an error; a failed rollback
	// is absorbed by the implementation (logged, not returned) and the
	// original error still propagates. Partial effects are never observable
	// to other units.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// ListLoans returns ledger rows matching the filter, joined with book and
	// borrower display fields.
	ListLoans(ctx context.Context, filter Filter, page Page) ([]LoanDetails, error)

	// GetLoanByID returns one ledger row, or ErrLoanNotFound.
	GetLoanByID(ctx context.Context, loanID int64) (LoanDetails, error)
}

// Tx is the surface available inside one atomic unit of work. The *ForUpdate
// reads take an exclusive lock scoped to that row, held until the unit
// commits or rolls back; no other unit can read or write the row's contended
// fields in between.
type Tx interface {
	// BookForUpdate returns the book's availability under an exclusive row
	// lock, or ErrBookNotFound.
	BookForUpdate(ctx context.Context, bookID int64) (available bool, err error)

	// SetBookAvailability flips the availability flag of a book already
	// locked by this unit.
	SetBookAvailability(ctx context.Context, bookID int64, available bool) error

	// InsertLoan stores a new loan record and returns its assigned id.
	InsertLoan(ctx context.Context, loan Loan) (int64, error)

	// LoanForUpdate returns the loan under an exclusive row lock, or
	// ErrLoanNotFound.
	LoanForUpdate(ctx context.Context, loanID int64) (Loan, error)

	// MarkLoanReturned sets the loan's status to RETURNED and records the
	// returned date.
	MarkLoanReturned(ctx context.Context, loanID int64, returnedAt time.Time) error

	// DeleteLoan removes a loan record, or returns ErrLoanNotFound. It is an
	// administrative override outside the loan state machine and does not
	// touch book availability.
	DeleteLoan(ctx context.Context, loanID int64) error
}
