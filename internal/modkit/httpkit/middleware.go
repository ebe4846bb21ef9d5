package httpkit

import (
	"net/http"
	"time"

	phttp "liveness/internal/platform/net/http"
	"liveness/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Origins []string
	Slow    time.Duration
}

// CommonStack returns the root middleware slice for the HTTP host
// nothing in it buffers or times out responses, the MCP streams stay open
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RealIP(),
		middleware.RequestID(),

		// safety
		middleware.RecoverJSON,
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Heartbeat("/healthz"),
	}
}

// Auth wires the auth middleware to the platform JSON writer, a nil port disables it
func Auth(p *Port) func(http.Handler) http.Handler {
	if p == nil {
		return middleware.Auth(nil, phttp.JSON)
	}
	return middleware.Auth(p, phttp.JSON)
}
