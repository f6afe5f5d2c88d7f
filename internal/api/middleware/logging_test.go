package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestLogger_LogsStatusAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := chimw.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("hello"))
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusAccepted)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["method"] != "POST" || line["path"] != "/mcp" {
		t.Fatalf("unexpected method/path in %v", line)
	}
	if line["status"] != float64(http.StatusAccepted) || line["bytes"] != float64(5) {
		t.Fatalf("unexpected status/bytes in %v", line)
	}
	if id, _ := line["request_id"].(string); id == "" {
		t.Fatalf("expected request_id, got %v", line)
	}
	if line["level"] != "INFO" {
		t.Fatalf("level=%v want INFO", line["level"])
	}
}

func TestRequestLogger_ImplicitOKAndLevels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		level  string
	}{
		{status: 0, level: "INFO"},
		{status: http.StatusNotFound, level: "WARN"},
		{status: http.StatusBadGateway, level: "ERROR"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		status := tc.status
		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if status != 0 {
				w.WriteHeader(status)
			}
			_, _ = w.Write([]byte("x"))
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		if line["level"] != tc.level {
			t.Errorf("status %d logged at %v; want %s", tc.status, line["level"], tc.level)
		}
	}
}

func TestRequestLogger_NilLoggerPassesThrough(t *testing.T) {
	t.Parallel()

	called := false
	handler := RequestLogger(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Fatal("expected next handler to run")
	}
}

func TestStatusRecorder_FlushDelegates(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, statusCode: http.StatusOK}
	rec.Flush()
	if !rr.Flushed {
		t.Fatal("expected Flush to reach the underlying writer")
	}
}
