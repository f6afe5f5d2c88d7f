package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestEchoRequestID_GeneratedID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := chimw.RequestID(EchoRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(chimw.RequestIDHeader)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	if seen == "" {
		t.Fatal("expected request header to carry the generated id")
	}
	if got := rr.Header().Get(chimw.RequestIDHeader); got != seen {
		t.Fatalf("response id %q != request id %q", got, seen)
	}
}

func TestEchoRequestID_ClientSuppliedID(t *testing.T) {
	t.Parallel()

	handler := chimw.RequestID(EchoRequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set(chimw.RequestIDHeader, "client-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(chimw.RequestIDHeader); got != "client-42" {
		t.Fatalf("expected client id echoed, got %q", got)
	}
}

func TestEchoRequestID_WithoutRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	handler := EchoRequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get(chimw.RequestIDHeader); got != "" {
		t.Fatalf("expected no header, got %q", got)
	}
}
