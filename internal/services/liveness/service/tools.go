package service

import (
	"context"
	"fmt"

	"liveness/internal/modkit/toolkit"
	perr "liveness/internal/platform/errors"
	dom "liveness/internal/services/liveness/domain"
)

// Tool names as seen by MCP clients
const (
	ToolStart  = "startLivenessAuthentication"
	ToolResult = "getLivenessResult"
	ToolSecret = "sampleSecretTool"
)

const (
	msgNoProgress = "The client doesn't support MCP progress notifications.  Please use a supported client."
	msgSecret     = "This is a secret tool that requires liveness authentication."
)

// ResultArgs is the input of getLivenessResult
type ResultArgs struct {
	SessionID string `json:"sessionId" validate:"required,max=128" jsonschema:"description=The session id in the liveness url"`
}

// StartDescription describes the start tool for the configured mode
func StartDescription(mode dom.Mode) string {
	if mode == dom.ModeVerify {
		return "Start a liveness authentication session with verify image. The user opens the returned url and the tool reports progress until the session completes."
	}
	return "Start a liveness authentication session. The user opens the returned url and the tool reports progress until the session completes."
}

// ResultDescription describes the result tool
const ResultDescription = "Get the result of a liveness session by the session id in the url."

// SecretDescription describes the gated sample tool
const SecretDescription = "This is a sample secret tool. It hides behind a liveness authentication successful session."

// StartLiveness creates a session, streams its url as progress and waits for the verdict
func (s *Svc) StartLiveness(ctx context.Context, call *toolkit.Call) (*toolkit.Result, error) {
	if !call.HasToken() {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, msgNoProgress)
	}
	v, err := s.run(ctx, call)
	if err != nil {
		return nil, err
	}
	return toolkit.Text(v.Text), nil
}

func (s *Svc) run(ctx context.Context, call Progressor) (dom.Verdict, error) {
	session, err := s.client.CreateSession(ctx, s.mode, s.newID(), s.cfg.VerifyImageFile)
	if err != nil {
		return dom.Verdict{}, err
	}
	out, err := s.poller.Poll(ctx, session, call)
	if err != nil {
		return dom.Verdict{}, err
	}

	v := Interpret(out, s.mode)
	s.log.Info().
		Str("session_id", session.ID).
		Str("liveness", out.Liveness.String()).
		Bool("pass", v.Pass).
		Msg("liveness session finished")
	if v.Pass {
		s.passed(ctx, v)
	}
	return v, nil
}

// LivenessResult is the getLivenessResult handler
func (s *Svc) LivenessResult(ctx context.Context, _ *toolkit.Call, in ResultArgs) (*toolkit.Result, error) {
	v, _, err := s.Result(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	return toolkit.Text(v.Text), nil
}

// Result observes a session once and interprets it
// A session that has not succeeded yet reports its status instead of a verdict
func (s *Svc) Result(ctx context.Context, sessionID string) (dom.Verdict, dom.Outcome, error) {
	if sessionID == "" {
		return dom.Verdict{}, dom.Outcome{}, perr.WithField(perr.InvalidArgf("session id is required"), "sessionId")
	}
	out, err := s.client.SessionStatus(ctx, dom.Session{ID: sessionID, Mode: s.mode})
	if err != nil {
		return dom.Verdict{}, out, err
	}
	if !out.Succeeded() {
		status := out.Status
		if status == "" {
			status = "unknown"
		}
		return dom.Verdict{Text: fmt.Sprintf("The status of the session is %s. Please check the session ID.", status)}, out, nil
	}
	return Interpret(out, s.mode), out, nil
}

// Secret is the gated sample tool
func (s *Svc) Secret(context.Context, *toolkit.Call) (*toolkit.Result, error) {
	return toolkit.Text(msgSecret), nil
}
