package lending

import (
	"context"
	"log/slog"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polytechlib/lending/pkg/logger"
	"github.com/polytechlib/lending/pkg/pg"
)

const (
	loansTable = "loans"
	booksTable = "books"
	usersTable = "users"
)

const (
	colLoanID       = "loan_id"
	colBookID       = "book_id"
	colBorrowerID   = "borrower_id"
	colLoanDate     = "loan_date"
	colDueDate      = "due_date"
	colReturnedDate = "returned_date"
	colStatus       = "status"
	colAvailable    = "available"
	colTitle        = "title"
	colAuthor       = "author"
	colUserID       = "user_id"
	colUserName     = "name"
)

var dialect = goqu.Dialect("postgres")

// PostgresStorage implements Storage on a shared pgx connection pool. Row
// locks come from SELECT ... FOR UPDATE inside a transaction: the lock is
// acquired on the first locked read and released at commit or rollback, which
// serializes concurrent units touching the same book or loan.
type PostgresStorage struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgresStorage wraps the injected pool; its lifecycle belongs to the
// caller.
func NewPostgresStorage(pool *pgxpool.Pool, log *slog.Logger) *PostgresStorage {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresStorage{pool: pool, log: log}
}

// InTx runs fn in one database transaction. On error the transaction is
// rolled back with a non-cancellable context, so a caller whose context was
// cancelled mid-unit cannot strand a half-applied state; a rollback failure
// is logged and absorbed while the original error propagates.
func (s *PostgresStorage) InTx(ctx context.Context, fn func(tx Tx) error) error {
	dbTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	if err := fn(&postgresTx{tx: dbTx}); err != nil {
		s.rollback(ctx, dbTx)
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		s.rollback(ctx, dbTx)
		return err
	}
	return nil
}

func (s *PostgresStorage) rollback(ctx context.Context, dbTx pgx.Tx) {
	if err := dbTx.Rollback(context.WithoutCancel(ctx)); err != nil && !pg.IsTxClosed(err) {
		s.log.ErrorContext(ctx, "transaction rollback failed", logger.Error(err))
	}
}

func (s *PostgresStorage) ListLoans(ctx context.Context, filter Filter, page Page) ([]LoanDetails, error) {
	query, err := buildListLoansSQL(filter, page.clamp())
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []LoanDetails
	for rows.Next() {
		d, err := scanLoanDetails(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *PostgresStorage) GetLoanByID(ctx context.Context, loanID int64) (LoanDetails, error) {
	query, err := buildGetLoanSQL(loanID)
	if err != nil {
		return LoanDetails{}, err
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return LoanDetails{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return LoanDetails{}, err
		}
		return LoanDetails{}, ErrLoanNotFound
	}
	return scanLoanDetails(rows)
}

// postgresTx is the unit-of-work surface bound to one open transaction.
type postgresTx struct {
	tx pgx.Tx
}

func (t *postgresTx) BookForUpdate(ctx context.Context, bookID int64) (bool, error) {
	query, err := buildBookForUpdateSQL(bookID)
	if err != nil {
		return false, err
	}

	var available bool
	if err := t.tx.QueryRow(ctx, query).Scan(&available); err != nil {
		if pg.IsNotFound(err) {
			return false, ErrBookNotFound
		}
		return false, err
	}
	return available, nil
}

func (t *postgresTx) SetBookAvailability(ctx context.Context, bookID int64, available bool) error {
	query, err := buildSetBookAvailabilitySQL(bookID, available)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, query)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (t *postgresTx) InsertLoan(ctx context.Context, loan Loan) (int64, error) {
	query, err := buildInsertLoanSQL(loan)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := t.tx.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (t *postgresTx) LoanForUpdate(ctx context.Context, loanID int64) (Loan, error) {
	query, err := buildLoanForUpdateSQL(loanID)
	if err != nil {
		return Loan{}, err
	}

	var loan Loan
	row := t.tx.QueryRow(ctx, query)
	if err := row.Scan(&loan.ID, &loan.BookID, &loan.BorrowerID,
		&loan.LoanDate, &loan.DueDate, &loan.ReturnedDate, &loan.Status); err != nil {
		if pg.IsNotFound(err) {
			return Loan{}, ErrLoanNotFound
		}
		return Loan{}, err
	}
	return loan, nil
}

func (t *postgresTx) MarkLoanReturned(ctx context.Context, loanID int64, returnedAt time.Time) error {
	query, err := buildMarkLoanReturnedSQL(loanID, returnedAt)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, query)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLoanNotFound
	}
	return nil
}

func (t *postgresTx) DeleteLoan(ctx context.Context, loanID int64) error {
	query, err := buildDeleteLoanSQL(loanID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, query)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLoanNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoanDetails(row rowScanner) (LoanDetails, error) {
	var d LoanDetails
	err := row.Scan(&d.ID, &d.BookID, &d.BorrowerID,
		&d.LoanDate, &d.DueDate, &d.ReturnedDate, &d.Status,
		&d.BookTitle, &d.BookAuthor, &d.BorrowerName)
	return d, err
}

func buildBookForUpdateSQL(bookID int64) (string, error) {
	query, _, err := dialect.
		From(booksTable).
		Select(colAvailable).
		Where(goqu.C(colBookID).Eq(bookID)).
		ForUpdate(exp.Wait).
		ToSQL()
	return query, err
}

func buildSetBookAvailabilitySQL(bookID int64, available bool) (string, error) {
	query, _, err := dialect.
		Update(booksTable).
		Set(goqu.Record{colAvailable: available}).
		Where(goqu.C(colBookID).Eq(bookID)).
		ToSQL()
	return query, err
}

func buildInsertLoanSQL(loan Loan) (string, error) {
	query, _, err := dialect.
		Insert(loansTable).
		Cols(colBookID, colBorrowerID, colLoanDate, colDueDate, colStatus).
		Vals(goqu.Vals{
			loan.BookID,
			loan.BorrowerID,
			loan.LoanDate,
			loan.DueDate.Format(dueDateLayout),
			string(loan.Status),
		}).
		Returning(colLoanID).
		ToSQL()
	return query, err
}

func buildLoanForUpdateSQL(loanID int64) (string, error) {
	query, _, err := dialect.
		From(loansTable).
		Select(colLoanID, colBookID, colBorrowerID,
			colLoanDate, colDueDate, colReturnedDate, colStatus).
		Where(goqu.C(colLoanID).Eq(loanID)).
		ForUpdate(exp.Wait).
		ToSQL()
	return query, err
}

func buildMarkLoanReturnedSQL(loanID int64, returnedAt time.Time) (string, error) {
	query, _, err := dialect.
		Update(loansTable).
		Set(goqu.Record{
			colStatus:       string(StatusReturned),
			colReturnedDate: returnedAt,
		}).
		Where(goqu.C(colLoanID).Eq(loanID)).
		ToSQL()
	return query, err
}

func buildDeleteLoanSQL(loanID int64) (string, error) {
	query, _, err := dialect.
		Delete(loansTable).
		Where(goqu.C(colLoanID).Eq(loanID)).
		ToSQL()
	return query, err
}

func loanDetailsDataset() *goqu.SelectDataset {
	l := goqu.T("l")
	b := goqu.T("b")
	u := goqu.T("u")

	return dialect.
		From(goqu.T(loansTable).As("l")).
		Join(goqu.T(booksTable).As("b"), goqu.On(b.Col(colBookID).Eq(l.Col(colBookID)))).
		Join(goqu.T(usersTable).As("u"), goqu.On(u.Col(colUserID).Eq(l.Col(colBorrowerID)))).
		Select(
			l.Col(colLoanID), l.Col(colBookID), l.Col(colBorrowerID),
			l.Col(colLoanDate), l.Col(colDueDate), l.Col(colReturnedDate), l.Col(colStatus),
			b.Col(colTitle), b.Col(colAuthor),
			u.Col(colUserName),
		)
}

func buildListLoansSQL(filter Filter, page Page) (string, error) {
	stmt := loanDetailsDataset()

	if filter.Status != "" {
		stmt = stmt.Where(goqu.T("l").Col(colStatus).Eq(string(filter.Status)))
	}
	if filter.BorrowerID != 0 {
		stmt = stmt.Where(goqu.T("l").Col(colBorrowerID).Eq(filter.BorrowerID))
	}

	sortCol := goqu.T("l").Col(string(page.Sort))
	order := sortCol.Asc()
	if page.Sort.descending() {
		order = sortCol.Desc()
	}

	query, _, err := stmt.
		Order(order).
		Offset(uint(page.Offset)).
		Limit(uint(page.Limit)).
		ToSQL()
	return query, err
}

func buildGetLoanSQL(loanID int64) (string, error) {
	query, _, err := loanDetailsDataset().
		Where(goqu.T("l").Col(colLoanID).Eq(loanID)).
		ToSQL()
	return query, err
}
