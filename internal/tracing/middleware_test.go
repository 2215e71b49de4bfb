package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ilkin0/mimedemo/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRequestAttributes_TagsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))

	ctx, span := tp.Tracer("test").Start(context.Background(), "GET /health")
	ctx = logger.WithRequestID(ctx, "req-123")

	called := false
	handler := RequestAttributes(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx))
	span.End()

	assert.True(t, called)
	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("http.request_id", "req-123"))
}

func TestRequestAttributes_NoRequestID(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))

	ctx, span := tp.Tracer("test").Start(context.Background(), "GET /health")
	RequestAttributes(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx))
	span.End()

	require.Len(t, sr.Ended(), 1)
	assert.Empty(t, sr.Ended()[0].Attributes())
}
