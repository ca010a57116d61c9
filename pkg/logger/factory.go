package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the handler encoding.
type Format string

const (
	// FormatJSON suits log aggregation in deployed environments.
	FormatJSON Format = "json"
	// FormatText suits local development.
	FormatText Format = "text"
)

// Option configures the logger factory.
type Option func(*settings)

type settings struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level for emitted records.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat sets the output format. Invalid formats panic so that a
// misconfigured service fails at startup instead of logging garbage.
func WithFormat(f Format) Option {
	return func(s *settings) {
		switch f {
		case FormatJSON, FormatText:
			s.format = f
		default:
			panic(fmt.Errorf("logger: invalid format %q, must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput redirects log output. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) {
		s.attrs = append(s.attrs, attrs...)
	}
}

// WithContextExtractors registers callbacks that pull attributes out of the
// context on every log call. Nil extractors are dropped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithDevelopment applies local-development defaults: text output at debug
// level, tagged with the service name.
func WithDevelopment(service string) Option {
	return func(s *settings) {
		s.level = slog.LevelDebug
		s.format = FormatText
		s.attrs = append(s.attrs,
			slog.String("service", service),
			slog.String("env", "development"),
		)
	}
}

// WithProduction applies deployment defaults: JSON output at info level,
// tagged with the service name.
func WithProduction(service string) Option {
	return func(s *settings) {
		s.level = slog.LevelInfo
		s.format = FormatJSON
		s.attrs = append(s.attrs,
			slog.String("service", service),
			slog.String("env", "production"),
		)
	}
}

// New builds a *slog.Logger from the given options. Defaults are
// production-safe: JSON at info level on stdout.
func New(opts ...Option) *slog.Logger {
	s := &settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	handlerOpts := &slog.HandlerOptions{Level: s.level}

	var handler slog.Handler
	if s.format == FormatText {
		handler = slog.NewTextHandler(s.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(s.output, handlerOpts)
	}

	if len(s.attrs) > 0 {
		handler = handler.WithAttrs(s.attrs)
	}

	return slog.New(newContextHandler(handler, s.extractors))
}

// SetAsDefault installs l as the process-wide slog default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
