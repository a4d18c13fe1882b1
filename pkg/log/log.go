package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
	FormatText   Format = "text"
)

var (
	ErrInvalidFormat = errors.New("invalid log format")
	ErrInvalidLevel  = errors.New("invalid log level")
)

// Format is a log output format.
type Format string

// ParseFormat parses a [Format] from a case-insensitive string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatLogfmt, FormatText:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func (f Format) formatter() log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	case FormatText:
	}

	return log.TextFormatter
}

// ParseLevel parses a [log.Level] from a case-insensitive string. "warning"
// is accepted as an alias of "warn".
func ParseLevel(s string) (log.Level, error) {
	s = strings.ToLower(s)
	if s == "warning" {
		s = "warn"
	}

	lvl, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return lvl, nil
}

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level log.Level, format Format) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       format.formatter(),
		ReportTimestamp: format != FormatText,
	})
}

// CreateHandlerWithStrings is like [CreateHandler], but parses the level and
// format first.
func CreateHandlerWithStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, lvl, f), nil
}
