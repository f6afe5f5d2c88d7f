package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arno-dev/postagent-mcp/internal/api/handlers"
	apmiddleware "github.com/arno-dev/postagent-mcp/internal/api/middleware"
	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
)

// RouterDeps carries what NewRouter mounts. Metrics is optional.
type RouterDeps struct {
	Registry *tool.Registry
	Backend  handlers.BackendProber
	MCP      http.Handler
	Metrics  http.Handler
	Logger   *slog.Logger
}

// NewRouter creates and configures the chi router for the gateway.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(apmiddleware.EchoRequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	probes := handlers.NewProbeHandler(deps.Backend)
	r.Get("/", probes.Root)
	r.Get("/health", probes.Health)
	r.Get("/ready", probes.Ready)

	tools := handlers.NewToolHandler(deps.Registry)
	r.Route("/tools", func(r chi.Router) {
		r.Get("/", tools.ListTools)      // GET /tools
		r.Get("/{name}", tools.GetTool) // GET /tools/{name}
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	// MCP streamable HTTP: POST for calls, GET/DELETE answered by the SDK.
	r.Handle("/mcp", deps.MCP)

	return r
}
