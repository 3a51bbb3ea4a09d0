package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTraceRequestsRecordsSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	tests := []struct {
		name       string
		status     int
		wantStatus codes.Code
	}{
		{name: "ok", status: http.StatusOK, wantStatus: codes.Unset},
		{name: "client error", status: http.StatusNotFound, wantStatus: codes.Unset},
		{name: "server error", status: http.StatusInternalServerError, wantStatus: codes.Error},
	}

	for i, tc := range tests {
		handler := traceRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !trace.SpanFromContext(r.Context()).SpanContext().IsValid() {
				t.Fatal("expected span in request context")
			}
			w.WriteHeader(tc.status)
			w.WriteHeader(http.StatusTeapot)
		}), provider.Tracer(tracerName))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/table", nil))

		spans := recorder.Ended()
		if len(spans) != i+1 {
			t.Fatalf("%s: ended spans = %d, want %d", tc.name, len(spans), i+1)
		}
		span := spans[i]
		if span.Name() != "GET /users/table" {
			t.Fatalf("%s: span name = %q", tc.name, span.Name())
		}
		if span.SpanKind() != trace.SpanKindServer {
			t.Fatalf("%s: span kind = %v", tc.name, span.SpanKind())
		}
		if span.Status().Code != tc.wantStatus {
			t.Fatalf("%s: span status = %v, want %v", tc.name, span.Status().Code, tc.wantStatus)
		}
		var gotStatus int64
		for _, attr := range span.Attributes() {
			if attr.Key == attribute.Key("http.response.status_code") {
				gotStatus = attr.Value.AsInt64()
			}
		}
		if gotStatus != int64(tc.status) {
			t.Fatalf("%s: status attribute = %d, want %d", tc.name, gotStatus, tc.status)
		}
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	_, _ = recorder.Write([]byte("ok"))
	recorder.WriteHeader(http.StatusInternalServerError)
	if recorder.status != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.status, http.StatusOK)
	}
	if recorder.Unwrap() != rec {
		t.Fatal("Unwrap() did not return the wrapped writer")
	}
}
