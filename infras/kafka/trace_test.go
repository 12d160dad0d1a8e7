package kafka

import (
	"context"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	goOtel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestTraceHeadersRoundTrip(t *testing.T) {
	goOtel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := oteltrace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := oteltrace.SpanIDFromHex("00f067aa0ba902b7")
	parent := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: oteltrace.FlagsSampled,
	}))

	msg := kafkaGo.Message{Headers: traceHeaders(parent)}
	assert.NotEmpty(t, msg.Headers)

	ctx := traceContext(context.Background(), msg)

	assert.Equal(t, traceID, oteltrace.SpanContextFromContext(ctx).TraceID())
}

func TestTraceContext_NoHeaders(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, ctx, traceContext(ctx, kafkaGo.Message{}))
}
