package mcphost

import (
	"context"

	"liveness/internal/modkit/toolkit"
	perr "liveness/internal/platform/errors"
	"liveness/internal/platform/logger"
	lnet "liveness/internal/platform/net"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// handler dispatches one tools/call to the registry
// the tool is looked up by name on every call so renames and removals apply
func (h *Host) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = withSession(ctx)

		var token toolkit.ProgressToken
		if req.Params.Meta != nil {
			token = req.Params.Meta.ProgressToken
		}
		res, err := h.reg.Invoke(ctx, toolkit.Request{
			Name:          name,
			Arguments:     req.GetArguments(),
			ProgressToken: token,
			Notifier:      Notifier{},
		})
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("tool", name).Str("code", perr.CodeOf(err).String()).Msg("tool call refused")
			return mcp.NewToolResultError(err.Error()), nil
		}
		return resultOf(res), nil
	}
}

func resultOf(r *toolkit.Result) *mcp.CallToolResult {
	out := &mcp.CallToolResult{IsError: r.IsError, Content: make([]mcp.Content, 0, len(r.Content))}
	for _, s := range r.Content {
		out.Content = append(out.Content, mcp.NewTextContent(s))
	}
	return out
}

// withSession tags ctx with the MCP client session for logging
// over HTTP the request id is already on ctx from the middleware stack
func withSession(ctx context.Context) context.Context {
	cs := server.ClientSessionFromContext(ctx)
	if cs == nil {
		return ctx
	}
	return logger.WithRequest(ctx, lnet.RequestID(ctx), cs.SessionID())
}

// Notifier sends progress to the client session on ctx
type Notifier struct{}

// NotifyProgress sends notifications/progress for token
func (Notifier) NotifyProgress(ctx context.Context, token toolkit.ProgressToken, p toolkit.Progress) error {
	s := server.ServerFromContext(ctx)
	if s == nil {
		return perr.Unavailablef("no mcp server on context")
	}
	if err := s.SendNotificationToClient(ctx, "notifications/progress", progressParams(token, p)); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "progress notification failed")
	}
	return nil
}

// progressParams is the notifications/progress payload, total is left out when unknown
func progressParams(token toolkit.ProgressToken, p toolkit.Progress) map[string]any {
	params := map[string]any{
		"progressToken": token,
		"progress":      p.Progress,
	}
	if p.Total > 0 {
		params["total"] = p.Total
	}
	if p.Message != "" {
		params["message"] = p.Message
	}
	return params
}
