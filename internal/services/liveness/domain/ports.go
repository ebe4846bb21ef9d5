package domain

import "context"

// SessionPort creates sessions and observes their status
type SessionPort interface {
	CreateSession(ctx context.Context, mode Mode, correlationID, referenceImage string) (Session, error)
	SessionStatus(ctx context.Context, s Session) (Outcome, error)
}

// ResultPort looks up and interprets a single session, used by the HTTP host and the CLI
type ResultPort interface {
	Result(ctx context.Context, sessionID string) (Verdict, Outcome, error)
}
