package inventory

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polytechlib/lending/pkg/pg"
)

const booksTable = "books"

const (
	colBookID    = "book_id"
	colTitle     = "title"
	colAuthor    = "author"
	colAvailable = "available"
)

var dialect = goqu.Dialect("postgres")

// PostgresStore implements Store on a shared pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps the injected pool; the pool's lifecycle belongs to
// the caller.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, book Book) (int64, error) {
	if book.Title == "" || book.Author == "" {
		return 0, ErrInvalidBook
	}

	query, err := buildCreateBookSQL(book)
	if err != nil {
		return 0, errors.Join(ErrStorageFailure, err)
	}

	var id int64
	if err := s.pool.QueryRow(ctx, query).Scan(&id); err != nil {
		return 0, errors.Join(ErrStorageFailure, err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, bookID int64) (Book, error) {
	query, err := buildGetBookSQL(bookID)
	if err != nil {
		return Book{}, errors.Join(ErrStorageFailure, err)
	}

	var book Book
	row := s.pool.QueryRow(ctx, query)
	if err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Available); err != nil {
		if pg.IsNotFound(err) {
			return Book{}, ErrBookNotFound
		}
		return Book{}, errors.Join(ErrStorageFailure, err)
	}
	return book, nil
}

func (s *PostgresStore) Update(ctx context.Context, book Book) error {
	if book.Title == "" || book.Author == "" {
		return ErrInvalidBook
	}

	query, err := buildUpdateBookSQL(book)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}

	tag, err := s.pool.Exec(ctx, query)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, bookID int64) error {
	query, err := buildDeleteBookSQL(bookID)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}

	tag, err := s.pool.Exec(ctx, query)
	if err != nil {
		if pg.IsForeignKeyViolation(err) {
			return errors.Join(ErrBookReferenced, err)
		}
		return errors.Join(ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (s *PostgresStore) SetAvailability(ctx context.Context, bookID int64, available bool) error {
	query, err := buildSetAvailabilitySQL(bookID, available)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}

	tag, err := s.pool.Exec(ctx, query)
	if err != nil {
		return errors.Join(ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter, page Page) ([]Book, error) {
	query, err := buildListBooksSQL(filter, page.clamp())
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var book Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Available); err != nil {
			return nil, errors.Join(ErrStorageFailure, err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStorageFailure, err)
	}
	return books, nil
}

func buildCreateBookSQL(book Book) (string, error) {
	query, _, err := dialect.
		Insert(booksTable).
		Cols(colTitle, colAuthor, colAvailable).
		Vals(goqu.Vals{book.Title, book.Author, book.Available}).
		Returning(colBookID).
		ToSQL()
	return query, err
}

func buildGetBookSQL(bookID int64) (string, error) {
	query, _, err := dialect.
		From(booksTable).
		Select(colBookID, colTitle, colAuthor, colAvailable).
		Where(goqu.C(colBookID).Eq(bookID)).
		ToSQL()
	return query, err
}

func buildUpdateBookSQL(book Book) (string, error) {
	query, _, err := dialect.
		Update(booksTable).
		Set(goqu.Record{colTitle: book.Title, colAuthor: book.Author}).
		Where(goqu.C(colBookID).Eq(book.ID)).
		ToSQL()
	return query, err
}

func buildDeleteBookSQL(bookID int64) (string, error) {
	query, _, err := dialect.
		Delete(booksTable).
		Where(goqu.C(colBookID).Eq(bookID)).
		ToSQL()
	return query, err
}

func buildSetAvailabilitySQL(bookID int64, available bool) (string, error) {
	query, _, err := dialect.
		Update(booksTable).
		Set(goqu.Record{colAvailable: available}).
		Where(goqu.C(colBookID).Eq(bookID)).
		ToSQL()
	return query, err
}

func buildListBooksSQL(filter Filter, page Page) (string, error) {
	stmt := dialect.
		From(booksTable).
		Select(colBookID, colTitle, colAuthor, colAvailable)

	if filter.Available != nil {
		stmt = stmt.Where(goqu.C(colAvailable).Eq(*filter.Available))
	}
	if filter.Title != "" {
		stmt = stmt.Where(goqu.C(colTitle).ILike("%" + filter.Title + "%"))
	}
	if filter.Author != "" {
		stmt = stmt.Where(goqu.C(colAuthor).ILike("%" + filter.Author + "%"))
	}

	query, _, err := stmt.
		Order(goqu.I(string(page.Sort)).Asc()).
		Offset(uint(page.Offset)).
		Limit(uint(page.Limit)).
		ToSQL()
	return query, err
}
