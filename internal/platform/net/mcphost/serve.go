package mcphost

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
)

// Endpoint paths on the HTTP host
const (
	PathStreamable = "/mcp"
	PathSSE        = "/sse"
	PathMessage    = "/message"
)

// ServeStdio speaks MCP over in and out until ctx ends or in closes
// stdout carries the protocol, so mcp-go's own errors go to the zerolog stderr writer
func (h *Host) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	ss := server.NewStdioServer(h.srv)
	ss.SetErrorLogger(log.New(h.log.With().Str("transport", "stdio").Logger(), "", 0))
	h.log.Info().Msg("serving mcp over stdio")
	return ss.Listen(ctx, in, out)
}

// Streamable returns the streamable HTTP handler for PathStreamable
func (h *Host) Streamable() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(h.srv, server.WithEndpointPath(PathStreamable))
}

// SSE returns the legacy SSE transport, baseURL is advertised in the endpoint event
func (h *Host) SSE(baseURL string) *server.SSEServer {
	return server.NewSSEServer(h.srv,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint(PathSSE),
		server.WithMessageEndpoint(PathMessage),
	)
}

// Mount registers the HTTP transports on mux-like handle
func (h *Host) Mount(handle func(pattern string, hd http.Handler), baseURL string) (shutdown func(context.Context) error) {
	st := h.Streamable()
	sse := h.SSE(baseURL)
	handle(PathStreamable, st)
	handle(PathSSE, sse.SSEHandler())
	handle(PathMessage, sse.MessageHandler())
	return func(ctx context.Context) error {
		errSSE := sse.Shutdown(ctx)
		if err := st.Shutdown(ctx); err != nil {
			return err
		}
		return errSSE
	}
}
