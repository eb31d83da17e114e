package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestTracerProviderDisabled(t *testing.T) {
	tp, shutdown, err := newTracerProvider(context.Background(), "")
	require.NoError(t, err)
	defer shutdown()

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestTracerProviderExporter(t *testing.T) {
	tp, shutdown, err := newTracerProvider(context.Background(), "127.0.0.1:4317")
	require.NoError(t, err)
	defer shutdown()

	_, ok := tp.(*sdktrace.TracerProvider)
	assert.True(t, ok)
}
