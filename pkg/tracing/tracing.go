package tracing

// Tracer starts spans.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a timed operation. Baggage items are reported when the span
// finishes.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

// NopTracer is a [Tracer] whose spans do nothing.
type NopTracer struct{}

//nolint:ireturn
func (NopTracer) StartSpan(string) Span {
	return nopSpan{}
}

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}

func (nopSpan) Finish() {}
