package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
)

type ToolHandler struct {
	registry *tool.Registry
}

func NewToolHandler(registry *tool.Registry) *ToolHandler {
	return &ToolHandler{registry: registry}
}

type toolResponse struct {
	Name        string             `json:"name"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	BackendPath string             `json:"backendPath"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// ListTools answers GET /tools with the catalog in advertisement order.
func (h *ToolHandler) ListTools(w http.ResponseWriter, _ *http.Request) {
	defs := h.registry.Definitions()
	out := make([]toolResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, toToolResponse(def))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "meta": map[string]int{"total": len(out)}})
}

// GetTool answers GET /tools/{name}.
func (h *ToolHandler) GetTool(w http.ResponseWriter, r *http.Request) {
	def, err := h.registry.Lookup(chi.URLParam(r, "name"))
	if errors.Is(err, tool.ErrToolNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up tool")
		return
	}
	writeJSON(w, http.StatusOK, toToolResponse(def))
}

func toToolResponse(def tool.Definition) toolResponse {
	return toolResponse{
		Name:        def.Name,
		Title:       def.Title,
		Description: def.Description,
		BackendPath: def.BackendPath,
		InputSchema: def.Schema.JSONSchema(),
	}
}
