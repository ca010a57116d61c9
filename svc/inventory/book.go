package inventory

// Book is a single title in the inventory. ID is assigned by the store and
// immutable; Available is owned by the loan transaction engine.
type Book struct {
	ID        int64
	Title     string
	Author    string
	Available bool
}

// SortKey names a column books may be ordered by. List only accepts keys from
// the allow-list below; anything else falls back to SortByID so arbitrary
// ordering input can never reach the database.
type SortKey string

const (
	SortByID           SortKey = "book_id"
	SortByTitle        SortKey = "title"
	SortByAuthor       SortKey = "author"
	SortByAvailability SortKey = "available"
)

// normalize maps unknown sort keys onto the id column.
func (k SortKey) normalize() SortKey {
	switch k {
	case SortByID, SortByTitle, SortByAuthor, SortByAvailability:
		return k
	default:
		return SortByID
	}
}

// Filter restricts List results. Zero values mean "no restriction"; Available
// is a pointer so both availability states can be selected explicitly.
type Filter struct {
	Available *bool
	// Title and Author match as case-insensitive substrings.
	Title  string
	Author string
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Page is offset-based pagination with a bounded limit.
type Page struct {
	Offset int
	Limit  int
	Sort   SortKey
}

// clamp applies the default and maximum limit and discards negative offsets.
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
