package lending

import "time"

// Status is a loan's lifecycle state. RETURNED is terminal.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusReturned Status = "RETURNED"
)

// Loan is one lending transaction for a book. All fields except Status and
// ReturnedDate are written once at creation and immutable after; Status and
// ReturnedDate change exactly once, during return.
type Loan struct {
	ID           int64
	BookID       int64
	BorrowerID   int64
	LoanDate     time.Time
	DueDate      time.Time
	ReturnedDate *time.Time
	Status       Status
}

// LoanDetails is a ledger row joined with the book's descriptive fields and
// the borrower's name. The join is a read-side display convenience and plays
// no part in the engine's invariants.
type LoanDetails struct {
	Loan
	BookTitle    string
	BookAuthor   string
	BorrowerName string
}

// CreateLoanCommand carries the validated parameters of a create-loan
// request. BorrowerID zero means the caller borrows for themselves.
type CreateLoanCommand struct {
	BookID     int64
	BorrowerID int64
	// DueDate is an ISO-8601 calendar date (YYYY-MM-DD). The engine rejects
	// anything it cannot interpret, regardless of upstream validation.
	DueDate string
}

// dueDateLayout matches the wire format of due dates.
const dueDateLayout = "2006-01-02"

func parseDueDate(s string) (time.Time, error) {
	due, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return due, nil
}

// SortKey names a column loan listings may be ordered by.
type SortKey string

const (
	SortByID       SortKey = "loan_id"
	SortByLoanDate SortKey = "loan_date"
	SortByDueDate  SortKey = "due_date"
	SortByStatus   SortKey = "status"
)

// normalize maps unknown sort keys onto loan_date, the ledger's natural
// order.
func (k SortKey) normalize() SortKey {
	switch k {
	case SortByID, SortByLoanDate, SortByDueDate, SortByStatus:
		return k
	default:
		return SortByLoanDate
	}
}

// descending reports whether the key orders newest-first. The ledger shows
// recent activity first; other keys read naturally ascending.
func (k SortKey) descending() bool {
	return k == SortByLoanDate
}

// Filter restricts ledger listings. Zero values mean "no restriction".
type Filter struct {
	Status     Status
	BorrowerID int64
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Page is offset-based pagination with a bounded limit and an allow-listed
// sort key.
type Page struct {
	Offset int
	Limit  int
	Sort   SortKey
}

func (p Page) clamp() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	p.Sort = p.Sort.normalize()
	return p
}
