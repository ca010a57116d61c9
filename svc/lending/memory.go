package lending

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage implements Storage in memory for hermetic tests. Units of
// work are serialized by one mutex and stage their writes on copies, so a
// unit that fails leaves no trace — the same external guarantees as the
// Postgres row-lock protocol, with coarser (whole-store) lock granularity.
type MemoryStorage struct {
	mu         sync.RWMutex
	books      map[int64]memBook
	users      map[int64]string
	loans      map[int64]Loan
	nextLoanID int64
}

type memBook struct {
	title     string
	author    string
	available bool
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		books:      make(map[int64]memBook),
		users:      make(map[int64]string),
		loans:      make(map[int64]Loan),
		nextLoanID: 1,
	}
}

// SeedBook registers a book under a fixed id.
func (m *MemoryStorage) SeedBook(id int64, title, author string, available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[id] = memBook{title: title, author: author, available: available}
}

// SeedUser registers a borrower name under a fixed id.
func (m *MemoryStorage) SeedUser(id int64, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = name
}

// BookAvailable reports a book's availability flag; the second result is
// false when the book does not exist.
func (m *MemoryStorage) BookAvailable(id int64) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	book, ok := m.books[id]
	return book.available, ok
}

// OpenLoanCount returns how many OPEN loans reference the book.
func (m *MemoryStorage) OpenLoanCount(bookID int64) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, loan := range m.loans {
		if loan.BookID == bookID && loan.Status == StatusOpen {
			n++
		}
	}
	return n
}

// InTx serializes units of work behind the store mutex. fn works on staged
// copies; they are applied only when fn returns nil.
func (m *MemoryStorage) InTx(_ context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{
		base:       m,
		books:      make(map[int64]memBook),
		loans:      make(map[int64]Loan),
		deleted:    make(map[int64]struct{}),
		nextLoanID: m.nextLoanID,
	}

	if err := fn(tx); err != nil {
		// Staged state is discarded; nothing was applied.
		return err
	}

	for id, book := range tx.books {
		m.books[id] = book
	}
	for id, loan := range tx.loans {
		m.loans[id] = loan
	}
	for _, loan := range tx.inserted {
		m.loans[loan.ID] = loan
	}
	for id := range tx.deleted {
		delete(m.loans, id)
	}
	m.nextLoanID = tx.nextLoanID
	return nil
}

func (m *MemoryStorage) ListLoans(_ context.Context, filter Filter, page Page) ([]LoanDetails, error) {
	page = page.clamp()

	m.mu.RLock()
	matched := make([]LoanDetails, 0, len(m.loans))
	for _, loan := range m.loans {
		if filter.Status != "" && loan.Status != filter.Status {
			continue
		}
		if filter.BorrowerID != 0 && loan.BorrowerID != filter.BorrowerID {
			continue
		}
		details, ok := m.joinLoan(loan)
		if !ok {
			continue
		}
		matched = append(matched, details)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch page.Sort {
		case SortByLoanDate:
			if !a.LoanDate.Equal(b.LoanDate) {
				return a.LoanDate.After(b.LoanDate)
			}
		case SortByDueDate:
			if !a.DueDate.Equal(b.DueDate) {
				return a.DueDate.Before(b.DueDate)
			}
		case SortByStatus:
			if a.Status != b.Status {
				return a.Status < b.Status
			}
		}
		return a.ID < b.ID
	})

	if page.Offset >= len(matched) {
		return []LoanDetails{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], nil
}

func (m *MemoryStorage) GetLoanByID(_ context.Context, loanID int64) (LoanDetails, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loan, ok := m.loans[loanID]
	if !ok {
		return LoanDetails{}, ErrLoanNotFound
	}
	details, ok := m.joinLoan(loan)
	if !ok {
		return LoanDetails{}, ErrLoanNotFound
	}
	return details, nil
}

// joinLoan attaches book and borrower display fields, mirroring the inner
// join semantics of the Postgres read side. Callers hold at least a read
// lock.
func (m *MemoryStorage) joinLoan(loan Loan) (LoanDetails, bool) {
	book, ok := m.books[loan.BookID]
	if !ok {
		return LoanDetails{}, false
	}
	name, ok := m.users[loan.BorrowerID]
	if !ok {
		return LoanDetails{}, false
	}
	return LoanDetails{
		Loan:         loan,
		BookTitle:    book.title,
		BookAuthor:   book.author,
		BorrowerName: name,
	}, true
}

// memoryTx stages writes for one unit of work. The store mutex is held for
// the unit's whole lifetime, so staged reads-then-writes are exclusive.
type memoryTx struct {
	base       *MemoryStorage
	books      map[int64]memBook
	loans      map[int64]Loan
	inserted   []Loan
	deleted    map[int64]struct{}
	nextLoanID int64
}

func (t *memoryTx) bookState(bookID int64) (memBook, bool) {
	if book, ok := t.books[bookID]; ok {
		return book, true
	}
	book, ok := t.base.books[bookID]
	return book, ok
}

func (t *memoryTx) loanState(loanID int64) (Loan, bool) {
	if _, gone := t.deleted[loanID]; gone {
		return Loan{}, false
	}
	if loan, ok := t.loans[loanID]; ok {
		return loan, true
	}
	loan, ok := t.base.loans[loanID]
	return loan, ok
}

func (t *memoryTx) BookForUpdate(_ context.Context, bookID int64) (bool, error) {
	book, ok := t.bookState(bookID)
	if !ok {
		return false, ErrBookNotFound
	}
	return book.available, nil
}

func (t *memoryTx) SetBookAvailability(_ context.Context, bookID int64, available bool) error {
	book, ok := t.bookState(bookID)
	if !ok {
		return ErrBookNotFound
	}
	book.available = available
	t.books[bookID] = book
	return nil
}

func (t *memoryTx) InsertLoan(_ context.Context, loan Loan) (int64, error) {
	loan.ID = t.nextLoanID
	t.nextLoanID++
	t.inserted = append(t.inserted, loan)
	return loan.ID, nil
}

func (t *memoryTx) LoanForUpdate(_ context.Context, loanID int64) (Loan, error) {
	loan, ok := t.loanState(loanID)
	if !ok {
		return Loan{}, ErrLoanNotFound
	}
	return loan, nil
}

func (t *memoryTx) MarkLoanReturned(_ context.Context, loanID int64, returnedAt time.Time) error {
	loan, ok := t.loanState(loanID)
	if !ok {
		return ErrLoanNotFound
	}
	loan.Status = StatusReturned
	loan.ReturnedDate = &returnedAt
	t.loans[loanID] = loan
	return nil
}

func (t *memoryTx) DeleteLoan(_ context.Context, loanID int64) error {
	if _, ok := t.loanState(loanID); !ok {
		return ErrLoanNotFound
	}
	t.deleted[loanID] = struct{}{}
	return nil
}
