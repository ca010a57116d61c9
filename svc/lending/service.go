package lending

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polytechlib/lending/pkg/identity"
	"github.com/polytechlib/lending/pkg/logger"
)

// Service is the loan transaction engine. It is safe for concurrent use; all
// mutual exclusion for a given book or loan comes from the storage unit's row
// locks, not from in-process serialization.
type Service struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithLogger sets the structured logger used for infrastructure failures and
// committed transitions.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Tests pin it to get deterministic
// loan and return dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the engine to its storage.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateLoan lends a book to a borrower. The caller is authorized first, the
// due date parsed, and then one atomic unit of work locks the book row,
// checks availability, flips it to loaned, and inserts the OPEN loan record.
// The lock is held across the whole read-check-write sequence, which is what
// makes a concurrent double-loan impossible.
//
// Returns the new loan's id, or ErrForbidden, ErrInvalidDueDate,
// ErrBookNotFound, ErrBookNotAvailable, ErrStorageFailure.
func (s *Service) CreateLoan(ctx context.Context, caller identity.Identity, cmd CreateLoanCommand) (int64, error) {
	borrowerID, err := ResolveBorrower(caller, cmd.BorrowerID)
	if err != nil {
		return 0, err
	}

	dueDate, err := parseDueDate(cmd.DueDate)
	if err != nil {
		return 0, err
	}

	var loanID int64
	loanDate := s.now()

	err = s.storage.InTx(ctx, func(tx Tx) error {
		available, err := tx.BookForUpdate(ctx, cmd.BookID)
		if err != nil {
			return err
		}
		if !available {
			return ErrBookNotAvailable
		}

		if err := tx.SetBookAvailability(ctx, cmd.BookID, false); err != nil {
			return err
		}

		id, err := tx.InsertLoan(ctx, Loan{
			BookID:     cmd.BookID,
			BorrowerID: borrowerID,
			LoanDate:   loanDate,
			DueDate:    dueDate,
			Status:     StatusOpen,
		})
		if err != nil {
			return err
		}
		loanID = id
		return nil
	})
	if err != nil {
		return 0, s.surface(ctx, "create loan", err,
			logger.BookID(cmd.BookID), logger.BorrowerID(borrowerID))
	}

	s.log.InfoContext(ctx, "loan created",
		logger.LoanID(loanID), logger.BookID(cmd.BookID), logger.BorrowerID(borrowerID))
	return loanID, nil
}

// ReturnLoan closes an open loan. Librarian-only. One atomic unit of work
// locks the loan row, rejects missing or already-returned loans, marks the
// loan RETURNED with a server-assigned returned date, and flips the
// referenced book back to available. Both transitions commit together or not
// at all.
//
// The loan's book reference is trusted unconditionally: the engine is the
// only writer of availability inside the state machine, so the referenced
// book is loaned unless it was edited out-of-band.
func (s *Service) ReturnLoan(ctx context.Context, caller identity.Identity, loanID int64) error {
	if err := CanReturnLoan(caller); err != nil {
		return err
	}

	returnedAt := s.now()

	err := s.storage.InTx(ctx, func(tx Tx) error {
		loan, err := tx.LoanForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status == StatusReturned {
			return ErrLoanAlreadyReturned
		}

		if err := tx.MarkLoanReturned(ctx, loanID, returnedAt); err != nil {
			return err
		}
		return tx.SetBookAvailability(ctx, loan.BookID, true)
	})
	if err != nil {
		return s.surface(ctx, "return loan", err, logger.LoanID(loanID))
	}

	s.log.InfoContext(ctx, "loan returned", logger.LoanID(loanID))
	return nil
}

// DeleteLoan removes a loan record. Librarian-only administrative override,
// outside the loan state machine: it never touches book availability and must
// not be used to work around the lifecycle.
func (s *Service) DeleteLoan(ctx context.Context, caller identity.Identity, loanID int64) error {
	if err := CanDeleteLoan(caller); err != nil {
		return err
	}

	err := s.storage.InTx(ctx, func(tx Tx) error {
		return tx.DeleteLoan(ctx, loanID)
	})
	if err != nil {
		return s.surface(ctx, "delete loan", err, logger.LoanID(loanID))
	}

	s.log.InfoContext(ctx, "loan deleted", logger.LoanID(loanID))
	return nil
}

// ListLoans returns ledger rows visible to the caller: members see their own
// loans, librarians see everything.
func (s *Service) ListLoans(ctx context.Context, caller identity.Identity, filter Filter, page Page) ([]LoanDetails, error) {
	scoped, err := ScopeFilter(caller, filter)
	if err != nil {
		return nil, err
	}

	loans, err := s.storage.ListLoans(ctx, scoped, page)
	if err != nil {
		return nil, s.surface(ctx, "list loans", err)
	}
	return loans, nil
}

// GetLoan returns one ledger row. A member fetching a loan they do not own
// gets ErrForbidden, not a not-found.
func (s *Service) GetLoan(ctx context.Context, caller identity.Identity, loanID int64) (LoanDetails, error) {
	details, err := s.storage.GetLoanByID(ctx, loanID)
	if err != nil {
		return LoanDetails{}, s.surface(ctx, "get loan", err, logger.LoanID(loanID))
	}

	if err := CanViewLoan(caller, details.BorrowerID); err != nil {
		return LoanDetails{}, err
	}
	return details, nil
}

// domainErrs are the expected rejections that pass through to callers as-is.
var domainErrs = []error{
	ErrBookNotFound,
	ErrBookNotAvailable,
	ErrLoanNotFound,
	ErrLoanAlreadyReturned,
	ErrForbidden,
	ErrInvalidDueDate,
}

// surface recovers domain rejections into typed results and converts
// everything else into an opaque storage failure after logging the cause. By
// the time surface runs the unit of work has already been rolled back.
func (s *Service) surface(ctx context.Context, op string, err error, attrs ...slog.Attr) error {
	for _, domain := range domainErrs {
		if errors.Is(err, domain) {
			return err
		}
	}

	s.log.LogAttrs(ctx, slog.LevelError, op+" failed",
		append(attrs, logger.Error(err))...)
	return errors.Join(ErrStorageFailure, err)
}
