package api

import (
	"context"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arno-dev/postagent-mcp/internal/ctxkeys"
	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
)

const methodCallTool = "tools/call"

// NewMCPServer advertises every registered tool over MCP and routes each call
// through d. Dispatch failures, unknown tool names included, become tool
// results with IsError set.
func NewMCPServer(d *tool.Dispatcher, impl *mcp.Implementation, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(impl, &mcp.ServerOptions{Logger: logger})
	server.AddReceivingMiddleware(unknownToolAsResult(d))
	for _, def := range d.Registry().Definitions() {
		server.AddTool(&mcp.Tool{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			InputSchema: def.Schema.JSONSchema(),
		}, toolHandler(d, def.Name))
	}
	return server
}

// unknownToolAsResult sends tools/call requests for names outside the registry
// to the dispatcher instead of letting the SDK answer with a protocol error,
// so they are logged and observed like any other failed dispatch.
func unknownToolAsResult(d *tool.Dispatcher) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}
			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil {
				return next(ctx, method, req)
			}
			if _, err := d.Registry().Lookup(call.Params.Name); err == nil {
				return next(ctx, method, req)
			}
			return toolHandler(d, call.Params.Name)(ctx, call)
		}
	}
}

func toolHandler(d *tool.Dispatcher, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if req.Extra != nil {
			if id := req.Extra.Header.Get(chimw.RequestIDHeader); id != "" {
				ctx = ctxkeys.WithValue(ctx, ctxkeys.RequestID, id)
			}
		}
		res, err := d.Dispatch(ctx, tool.Invocation{ToolName: name, Input: req.Params.Arguments})
		if err != nil {
			out := &mcp.CallToolResult{}
			out.SetError(err)
			return out, nil
		}
		return toCallToolResult(res), nil
	}
}

func toCallToolResult(res *tool.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(res.Content))
	for _, c := range res.Content {
		content = append(content, &mcp.TextContent{Text: c.Text})
	}
	return &mcp.CallToolResult{
		Content:           content,
		StructuredContent: res.StructuredContent,
	}
}

// NewMCPHandler serves server over streamable HTTP. Every request gets a
// fresh stateless session and a plain JSON answer.
func NewMCPHandler(server *mcp.Server, logger *slog.Logger) http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return server },
		&mcp.StreamableHTTPOptions{
			Stateless:    true,
			JSONResponse: true,
			Logger:       logger,
		},
	)
}
