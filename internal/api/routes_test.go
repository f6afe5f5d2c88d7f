package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arno-dev/postagent-mcp/internal/domain/posts"
	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
	"github.com/arno-dev/postagent-mcp/internal/infra/backend"
)

func newTestRouter(t *testing.T, backendURL string, metrics http.Handler, logs io.Writer) http.Handler {
	t.Helper()
	registry := posts.NewRegistry()
	client := backend.NewClient(backendURL, 5*time.Second)
	d := tool.NewDispatcher(registry, client)
	server := NewMCPServer(d, &mcp.Implementation{Name: "linkedin-post-agent", Version: "test"}, nil)

	var logger *slog.Logger
	if logs != nil {
		logger = slog.New(slog.NewTextHandler(logs, nil))
	}
	return NewRouter(RouterDeps{
		Registry: registry,
		Backend:  client,
		MCP:      NewMCPHandler(server, nil),
		Metrics:  metrics,
		Logger:   logger,
	})
}

func TestNewRouter_ProbeEndpoints(t *testing.T) {
	t.Parallel()

	backendSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(backendSrv.Close)

	router := newTestRouter(t, backendSrv.URL, nil, nil)

	cases := []struct {
		path string
		want string
	}{
		{path: "/", want: "MCP server OK"},
		{path: "/health", want: `"ok":true`},
		{path: "/ready", want: `"ready":true`},
		{path: "/tools", want: posts.ToolImagePrompts},
		{path: "/tools/posts_full", want: "/posts/full"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d (%s)", tc.path, w.Code, w.Body.String())
			continue
		}
		if !strings.Contains(w.Body.String(), tc.want) {
			t.Errorf("GET %s: expected body to contain %q, got %q", tc.path, tc.want, w.Body.String())
		}
	}
}

func TestNewRouter_ReadyReportsBackendDown(t *testing.T) {
	t.Parallel()

	backendSrv := httptest.NewServer(http.NotFoundHandler())
	backendURL := backendSrv.URL
	backendSrv.Close()

	router := newTestRouter(t, backendURL, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from /ready, got %d", w.Code)
	}
}

func TestNewRouter_MetricsOptional(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newTestRouter(t, "http://localhost:8080", nil, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics handler, got %d", w.Code)
	}

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "postagent_tool_invocations_total 0\n")
	})
	w = httptest.NewRecorder()
	newTestRouter(t, "http://localhost:8080", metrics, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "postagent_tool_invocations_total") {
		t.Fatalf("unexpected /metrics response %d %q", w.Code, w.Body.String())
	}
}

func TestNewRouter_MCPInitialize(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	router := newTestRouter(t, "http://localhost:8080", nil, &logs)

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"curl","version":"0"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /mcp initialize, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "linkedin-post-agent") {
		t.Fatalf("expected serverInfo in initialize result, got %s", w.Body.String())
	}
	if !strings.Contains(logs.String(), "path=/mcp") {
		t.Fatalf("expected access log for /mcp, got %q", logs.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id response header")
	}
}
