package tracing_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MacroPower/abischema/pkg/tracing"
)

func TestLoggingTracer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tracer := tracing.NewLoggingTracer(logger)

	span := tracer.StartSpan("transform")
	span.SetBaggageItem("functions", 4)
	span.SetBaggageItem("contract", "wrap.near")
	span.Finish()

	out := buf.String()
	assert.Contains(t, out, "msg=trace")
	assert.Contains(t, out, "operation_name=transform")
	assert.Contains(t, out, "functions=4")
	assert.Contains(t, out, "contract=wrap.near")
	assert.Contains(t, out, "time_ms=")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("contract=")), bytes.Index(buf.Bytes(), []byte("functions=")))
}

func TestLoggingTracerLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	tracing.NewLoggingTracer(logger).StartSpan("compile").Finish()

	assert.Empty(t, buf.String())
}

func TestNopTracer(t *testing.T) {
	t.Parallel()

	span := tracing.NopTracer{}.StartSpan("fetch")
	span.SetBaggageItem("k", "v")
	span.Finish()
}
