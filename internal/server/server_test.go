package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer written by the server goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Addr != "0.0.0.0:3333" {
		t.Fatalf("Addr = %q; want %q", cfg.Addr, "0.0.0.0:3333")
	}
	if cfg.ReadTimeout != 15*time.Second {
		t.Fatalf("ReadTimeout = %v; want %v", cfg.ReadTimeout, 15*time.Second)
	}
	if cfg.WriteTimeout != 150*time.Second {
		t.Fatalf("WriteTimeout = %v; want %v", cfg.WriteTimeout, 150*time.Second)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("IdleTimeout = %v; want %v", cfg.IdleTimeout, 60*time.Second)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v; want %v", cfg.ShutdownTimeout, 10*time.Second)
	}
}

func TestNewServer_ConfiguresAddressAndHandler(t *testing.T) {
	t.Parallel()

	cfg := Config{Addr: "127.0.0.1:18080", ReadTimeout: time.Second, WriteTimeout: 2 * time.Second, IdleTimeout: 3 * time.Second}
	s := NewServer(http.NotFoundHandler(), cfg, nil)

	if s == nil {
		t.Fatal("NewServer() returned nil")
	}
	if s.http.Addr != "127.0.0.1:18080" {
		t.Fatalf("Addr = %q; want %q", s.http.Addr, "127.0.0.1:18080")
	}
	if s.http.Handler == nil {
		t.Fatal("Handler should not be nil")
	}
	if s.http.WriteTimeout != 2*time.Second {
		t.Fatalf("WriteTimeout = %v; want %v", s.http.WriteTimeout, 2*time.Second)
	}
	if s.logger == nil {
		t.Fatal("logger should default to slog.Default()")
	}
}

func TestRun_ServesUntilContextCancelled(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var logs syncBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "MCP server OK")
	})
	cfg := DefaultConfig()
	cfg.ShutdownTimeout = 2 * time.Second
	s := NewServer(handler, cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		cancel()
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "MCP server OK" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v; want nil after graceful shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	out := logs.String()
	for _, want := range []string{"MCP server listening", "server shutdown complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q: %s", want, out)
		}
	}
}

func TestStart_ListenError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	cfg := DefaultConfig()
	cfg.Addr = ln.Addr().String()
	s := NewServer(http.NotFoundHandler(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := s.Start(context.Background()); err == nil || !strings.Contains(err.Error(), "listen on") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
