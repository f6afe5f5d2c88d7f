// Package app assembles the gateway from its configuration.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arno-dev/postagent-mcp/internal/api"
	"github.com/arno-dev/postagent-mcp/internal/domain/posts"
	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
	"github.com/arno-dev/postagent-mcp/internal/infra/backend"
	"github.com/arno-dev/postagent-mcp/internal/infra/config"
	"github.com/arno-dev/postagent-mcp/internal/infra/logging"
	"github.com/arno-dev/postagent-mcp/internal/infra/telemetry"
	"github.com/arno-dev/postagent-mcp/internal/server"
	"github.com/arno-dev/postagent-mcp/internal/version"
)

// writeTimeoutSlack is added to the backend timeout so a slow tool call can
// still write its response.
const writeTimeoutSlack = 30 * time.Second

// App is a fully wired gateway.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Backend    *backend.Client
	Dispatcher *tool.Dispatcher
	Handler    http.Handler

	telemetry *telemetry.Providers
	server    *server.Server
}

// New validates cfg and wires logger, telemetry, backend client, tool
// registry, dispatcher, MCP server and router. Logs go to logOut.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	providers, err := telemetry.Setup(ctx, telemetry.Settings{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, err
	}
	observer, err := telemetry.NewDispatchObserver(providers.Meter(), providers.Tracer())
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, err
	}

	client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout)
	dispatcher := tool.NewDispatcher(posts.NewRegistry(), client,
		tool.WithObserver(observer),
		tool.WithLogger(logger.With(slog.String("component", "dispatcher"))),
	)

	mcpServer := api.NewMCPServer(dispatcher, &mcp.Implementation{
		Name:    cfg.ServiceName,
		Title:   "LinkedIn post agent",
		Version: version.Version,
	}, logger.With(slog.String("component", "mcp")))

	handler := api.NewRouter(api.RouterDeps{
		Registry: dispatcher.Registry(),
		Backend:  client,
		MCP:      api.NewMCPHandler(mcpServer, logger.With(slog.String("component", "mcp-http"))),
		Metrics:  providers.MetricsHandler(),
		Logger:   logger.With(slog.String("component", "http")),
	})

	srvCfg := server.DefaultConfig()
	srvCfg.Addr = cfg.Addr()
	srvCfg.WriteTimeout = 0
	if cfg.BackendTimeout > 0 {
		srvCfg.WriteTimeout = cfg.BackendTimeout + writeTimeoutSlack
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Backend:    client,
		Dispatcher: dispatcher,
		Handler:    handler,
		telemetry:  providers,
		server:     server.NewServer(handler, srvCfg, logger),
	}, nil
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Config.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.Config.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	a.Logger.InfoContext(ctx, "starting gateway",
		slog.String("mcp_endpoint", "http://"+ln.Addr().String()+"/mcp"),
		slog.String("backend", a.Backend.BaseURL()),
		slog.Int("tools", a.Dispatcher.Registry().Len()),
		slog.Bool("trace_export", a.telemetry.Exporting()),
	)
	return a.server.Run(ctx, ln)
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	return a.telemetry.Shutdown(ctx)
}
