// Package logger builds configured *slog.Logger instances for the lending
// service.
//
// A single factory, New, assembles a text or JSON slog handler from functional
// options, attaches static attributes (service name, environment), and wraps
// the handler so that registered ContextExtractor callbacks can inject
// request-scoped attributes (caller id, role) into every record.
//
//	log := logger.New(
//	    logger.WithProduction("lending"),
//	    logger.WithContextExtractors(identity.LogExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute constructors in attr.go keep key naming consistent across the
// codebase: logger.BookID(5), logger.LoanID(12), logger.Error(err).
package logger
