// Package mcphost binds the tool registry to an MCP server
//
// The registry stays the source of truth. Every registry change replaces the server's
// tool set in one SetTools call, so clients see one tools/list_changed per mutation.
// Disabled tools are kept on the server but filtered out of tools/list.
package mcphost

import (
	"context"
	"encoding/json"

	"liveness/internal/modkit/toolkit"
	"liveness/internal/platform/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Options names the server in the initialize handshake
type Options struct {
	Name         string
	Version      string
	Instructions string
}

// Host is an MCP server kept in sync with a tool registry
type Host struct {
	reg  *toolkit.Registry
	srv  *server.MCPServer
	log  *logger.Logger
	stop func()
}

// New builds the MCP server over reg and subscribes to its changes
func New(reg *toolkit.Registry, o Options) *Host {
	h := &Host{reg: reg, log: logger.Named("mcphost")}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithToolFilter(h.filter),
	}
	if o.Instructions != "" {
		opts = append(opts, server.WithInstructions(o.Instructions))
	}
	h.srv = server.NewMCPServer(o.Name, o.Version, opts...)

	h.sync()
	h.stop = reg.OnListChanged(h.sync)
	return h
}

// Server returns the underlying mcp-go server
func (h *Host) Server() *server.MCPServer { return h.srv }

// Close detaches the host from registry changes
func (h *Host) Close() {
	if h.stop != nil {
		h.stop()
	}
}

// sync replaces the server tool set with the registry's
func (h *Host) sync() {
	all := h.reg.All()
	tools := make([]server.ServerTool, 0, len(all))
	for _, d := range all {
		tools = append(tools, server.ServerTool{
			Tool:    toolOf(d),
			Handler: h.handler(d.Name),
		})
	}
	h.srv.SetTools(tools...)
	h.log.Debug().Int("tools", len(tools)).Msg("tool set synced")
}

// filter hides disabled tools from tools/list
func (h *Host) filter(_ context.Context, tools []mcp.Tool) []mcp.Tool {
	out := tools[:0:0]
	for _, t := range tools {
		if h.reg.Enabled(t.Name) {
			out = append(out, t)
		}
	}
	return out
}

func toolOf(d toolkit.Descriptor) mcp.Tool {
	t := mcp.NewToolWithRawSchema(d.Name, d.Description, json.RawMessage(d.InputSchema))
	if len(d.Metadata) > 0 {
		t.Meta = mcp.NewMetaFromMap(d.Metadata)
	}
	return t
}
