// Package lending is the loan transaction engine and loan ledger: the state
// machine that governs a book's availability together with its loan record,
// and the concurrency control that guarantees no book is ever lent to two
// borrowers at once.
//
// Service executes the state-changing commands (CreateLoan, ReturnLoan) as
// atomic units of work against a Storage implementation. Each
// unit reads the contended row (the book on create, the loan on return) under
// an exclusive row-scoped lock held until commit or rollback, so concurrent
// commands on the same book serialize and the loser observes the updated
// state instead of double-succeeding.
//
// Commands are authorized before the engine runs: members may only borrow for
// themselves and see their own loans, librarians act on behalf of anyone and
// alone may return or delete loans. See policy.go.
//
// Failures split into two kinds. Domain rejections (ErrBookNotAvailable,
// ErrLoanAlreadyReturned, ...) are expected outcomes of valid commands and are
// returned as sentinel errors callers branch on with errors.Is. Anything else
// is an infrastructure failure: the unit of work is rolled back, the cause is
// logged, and an opaque ErrStorageFailure is surfaced.
//
// PostgresStorage implements Storage with pgx transactions and
// SELECT ... FOR UPDATE row locks. MemoryStorage mirrors the same guarantees
// in memory for hermetic tests.
package lending
