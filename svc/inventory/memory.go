package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store with an in-memory map, mirroring the Postgres
// semantics closely enough for hermetic tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	books  map[int64]Book
}

// NewMemoryStore returns an empty in-memory book store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		books:  make(map[int64]Book),
	}
}

func (m *MemoryStore) Create(_ context.Context, book Book) (int64, error) {
	if book.Title == "" || book.Author == "" {
		return 0, ErrInvalidBook
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	book.ID = m.nextID
	m.nextID++
	m.books[book.ID] = book
	return book.ID, nil
}

func (m *MemoryStore) Get(_ context.Context, bookID int64) (Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	book, ok := m.books[bookID]
	if !ok {
		return Book{}, ErrBookNotFound
	}
	return book, nil
}

func (m *MemoryStore) Update(_ context.Context, book Book) error {
	if book.Title == "" || book.Author == "" {
		return ErrInvalidBook
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.books[book.ID]
	if !ok {
		return ErrBookNotFound
	}
	current.Title = book.Title
	current.Author = book.Author
	m.books[book.ID] = current
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[bookID]; !ok {
		return ErrBookNotFound
	}
	delete(m.books, bookID)
	return nil
}

func (m *MemoryStore) SetAvailability(_ context.Context, bookID int64, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.books[bookID]
	if !ok {
		return ErrBookNotFound
	}
	book.Available = available
	m.books[bookID] = book
	return nil
}

func (m *MemoryStore) List(_ context.Context, filter Filter, page Page) ([]Book, error) {
	page = page.clamp()

	m.mu.RLock()
	matched := make([]Book, 0, len(m.books))
	for _, book := range m.books {
		if filter.Available != nil && book.Available != *filter.Available {
			continue
		}
		if filter.Title != "" && !containsFold(book.Title, filter.Title) {
			continue
		}
		if filter.Author != "" && !containsFold(book.Author, filter.Author) {
			continue
		}
		matched = append(matched, book)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch page.Sort {
		case SortByTitle:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case SortByAuthor:
			if a.Author != b.Author {
				return a.Author < b.Author
			}
		case SortByAvailability:
			if a.Available != b.Available {
				// Matches boolean ordering in Postgres: false sorts first.
				return !a.Available
			}
		}
		return a.ID < b.ID
	})

	if page.Offset >= len(matched) {
		return []Book{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
