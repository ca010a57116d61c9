package logger

import "log/slog"

// Error records a single error under the key "error". A nil error produces an
// empty attribute, so callers do not need a nil check at the call site.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// BookID records a book identifier under the key "book_id".
func BookID(id int64) slog.Attr {
	return slog.Int64("book_id", id)
}

// LoanID records a loan identifier under the key "loan_id".
func LoanID(id int64) slog.Attr {
	return slog.Int64("loan_id", id)
}

// BorrowerID records a borrower identifier under the key "borrower_id".
func BorrowerID(id int64) slog.Attr {
	return slog.Int64("borrower_id", id)
}

// CallerID records the authenticated caller's identifier under "caller_id".
func CallerID(id int64) slog.Attr {
	return slog.Int64("caller_id", id)
}
