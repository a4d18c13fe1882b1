package tracing

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = loggingSpan{}
	_ Tracer = NopTracer{}
)

// LoggingTracer logs each finished span at debug level.
type LoggingTracer struct {
	logger *slog.Logger
}

// NewLoggingTracer creates a new [LoggingTracer]. A nil logger uses the
// default logger at the time each span finishes.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
	}
}

//nolint:ireturn
func (l LoggingTracer) StartSpan(operationName string) Span {
	return loggingSpan{
		logger:        l.logger,
		operationName: operationName,
		baggage:       make(map[string]any),
		start:         time.Now(),
	}
}

type loggingSpan struct {
	start         time.Time
	logger        *slog.Logger
	baggage       map[string]any
	operationName string
}

func (s loggingSpan) Finish() {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := baggageToVals(s.baggage)
	attrs = append(attrs, "operation_name", s.operationName, "time_ms", time.Since(s.start).Seconds()*1e3)
	logger.Log(context.Background(), slog.LevelDebug, "trace", attrs...)
}

func (s loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage[key] = value
}

func baggageToVals(baggage map[string]any) []any {
	keys := make([]string, 0, len(baggage))
	for k := range baggage {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	result := make([]any, 0, len(baggage)*2+4)
	for _, k := range keys {
		result = append(result, k, baggage[k])
	}

	return result
}
