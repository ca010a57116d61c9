// Package inventory is the book inventory store: each book's identity,
// descriptive fields, and its availability flag.
//
// The availability flag mirrors the loan ledger (a book is available exactly
// when no open loan references it), but this package never flips it on its
// own; only the loan transaction engine (svc/lending) changes availability as
// part of its atomic units of work. SetAvailability exists solely as an
// administrative override for out-of-band corrections.
//
// Two Store implementations are provided: PostgresStore for production and
// MemoryStore for hermetic tests.
package inventory
