// Package net holds request scoped values shared by the HTTP and MCP transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keySessionID ctxKey = "mcp_session_id"
	keyClient    ctxKey = "client"
)

// WithRequest annotates ctx with the request id and the MCP session id
func WithRequest(ctx context.Context, reqID, sessionID string) context.Context {
	if reqID != "" {
		// chi's key so chimw.GetReqID keeps working downstream
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	return ctx
}

// WithClient annotates ctx with the authenticated client name
func WithClient(ctx context.Context, client string) context.Context {
	if client != "" {
		ctx = context.WithValue(ctx, keyClient, client)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// SessionID returns the MCP session id on the context if present
func SessionID(ctx context.Context) string {
	s, _ := ctx.Value(keySessionID).(string)
	return s
}

// Client returns the authenticated client name if present
func Client(ctx context.Context) string {
	s, _ := ctx.Value(keyClient).(string)
	return s
}
