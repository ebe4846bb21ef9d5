// Package http provides meta endpoints and a REST view of the tool registry
package http

import (
	"encoding/json"
	"net/http"
	"time"

	"liveness/internal/core/version"
	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/toolkit"
)

// Greeting is the body of GET /
const Greeting = "Hello World! This is a liveness server."

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Tools       *toolkit.Registry
	Modules     func() []string
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Text(r, "/", Greeting)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)

	if d.Tools != nil {
		httpkit.Get(r, "/tools", h.tools)
		httpkit.PostJSON[map[string]any](r, "/tools/{name}", h.invoke)
	}
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string   `json:"name"`
	Started string   `json:"started"`
	Uptime  int64    `json:"uptime"`
	Modules []string `json:"modules,omitempty"`
}

// ToolResponse is one entry of GET /tools
type ToolResponse struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// InvokeResponse is the outcome of POST /tools/{name}
type InvokeResponse struct {
	Tool    string   `json:"tool"`
	IsError bool     `json:"isError"`
	Content []string `json:"content"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}
	if h.deps.Modules != nil {
		out.Modules = h.deps.Modules()
	}
	return out, nil
}

// GET /tools lists the tools an MCP client would see
func (h *handlers) tools(_ *http.Request) (any, error) {
	list := h.deps.Tools.List()
	out := make([]ToolResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ToolResponse{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: json.RawMessage(d.InputSchema),
			Metadata:    d.Metadata,
		})
	}
	return out, nil
}

// POST /tools/{name} invokes a tool without a progress token, for debugging
func (h *handlers) invoke(r *http.Request, args map[string]any) (any, error) {
	name := httpkit.Param(r, "name")
	res, err := h.deps.Tools.Invoke(r.Context(), toolkit.Request{Name: name, Arguments: args})
	if err != nil {
		return nil, err
	}
	return InvokeResponse{Tool: name, IsError: res.IsError, Content: res.Content}, nil
}
