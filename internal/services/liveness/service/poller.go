package service

import (
	"context"
	"fmt"
	"time"

	"liveness/internal/modkit/toolkit"
	perr "liveness/internal/platform/errors"
	"liveness/internal/platform/logger"
	dom "liveness/internal/services/liveness/domain"
)

// PollConfig sets the cadence of the poll loop
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
	// ReportEvery re-sends the URL every Nth attempt
	ReportEvery int
}

// DefaultPollConfig polls once a second for ten minutes and reports every 30 seconds
func DefaultPollConfig() PollConfig {
	return PollConfig{Interval: time.Second, MaxAttempts: 600, ReportEvery: 30}
}

func (c PollConfig) withDefaults() PollConfig {
	d := DefaultPollConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.ReportEvery <= 0 {
		c.ReportEvery = d.ReportEvery
	}
	return c
}

// PollState is where a poll run stands
type PollState int

const (
	StateCreated PollState = iota
	StatePolling
	StateSucceeded
	StateTimedOut
	StateCancelled
	StateErrored
)

var pollStateNames = map[PollState]string{
	StateCreated:   "created",
	StatePolling:   "polling",
	StateSucceeded: "succeeded",
	StateTimedOut:  "timed_out",
	StateCancelled: "cancelled",
	StateErrored:   "errored",
}

// String names the state
func (s PollState) String() string {
	if n, ok := pollStateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// IsTerminal reports whether no further polling happens from s
func (s PollState) IsTerminal() bool { return s >= StateSucceeded }

const msgCancelled = "Aborted by the user."

// Progressor is the notification side of a tool call; *toolkit.Call satisfies it
type Progressor interface {
	Notify(ctx context.Context, p toolkit.Progress) error
	TrySend(ctx context.Context, p toolkit.Progress) toolkit.Delivery
}

// StatusFunc observes a session once
type StatusFunc func(ctx context.Context, s dom.Session) (dom.Outcome, error)

// Poller drives a created session to a terminal state
type Poller struct {
	status StatusFunc
	cfg    PollConfig
	log    *logger.Logger
	wait   func(ctx context.Context, d time.Duration) error
}

// NewPoller builds a poller over status; zero config fields take the defaults
func NewPoller(status StatusFunc, cfg PollConfig) *Poller {
	return &Poller{
		status: status,
		cfg:    cfg.withDefaults(),
		log:    logger.Named("poller"),
		wait:   waitCtx,
	}
}

// Config returns the effective cadence
func (p *Poller) Config() PollConfig { return p.cfg }

// Poll announces the session URL and polls until success, timeout, cancellation or error
// Only a Succeeded outcome comes back without error
func (p *Poller) Poll(ctx context.Context, s dom.Session, call Progressor) (dom.Outcome, error) {
	out, _, err := p.run(ctx, s, call)
	return out, err
}

func (p *Poller) run(ctx context.Context, s dom.Session, call Progressor) (dom.Outcome, PollState, error) {
	log := p.log.With().Str("session_id", s.ID).Logger()
	state := StateCreated
	move := func(next PollState, attempt int) {
		log.Debug().Str("from", state.String()).Str("to", next.String()).Int("attempt", attempt).Msg("poll state")
		state = next
	}

	total := float64(p.cfg.MaxAttempts)
	first := toolkit.Progress{
		Progress: 0,
		Total:    total,
		Message:  fmt.Sprintf("Please visit the url and perform the liveness authentication session:  %s", s.URL),
	}
	if err := call.Notify(ctx, first); err != nil {
		move(StateErrored, 0)
		return dom.Outcome{SessionID: s.ID}, state, perr.Wrap(err, perr.CodeOf(err), "could not deliver the liveness session url")
	}
	move(StatePolling, 0)

	last := dom.Outcome{SessionID: s.ID}
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if err := p.wait(ctx, p.cfg.Interval); err != nil {
			move(StateCancelled, attempt)
			return last, state, perr.New(perr.ErrorCodeCancelled, msgCancelled)
		}

		out, err := p.status(ctx, s)
		if err != nil {
			move(StateErrored, attempt)
			return out, state, perr.WithOp(err, "poll session status")
		}
		last = out

		if out.Succeeded() {
			move(StateSucceeded, attempt)
			return out, state, nil
		}
		if ctx.Err() != nil {
			move(StateCancelled, attempt)
			return out, state, perr.New(perr.ErrorCodeCancelled, msgCancelled)
		}
		if attempt%p.cfg.ReportEvery == 0 {
			_ = call.TrySend(ctx, toolkit.Progress{
				Progress: float64(attempt),
				Total:    total,
				Message:  fmt.Sprintf("%d: Waiting for the liveness authentication session to complete.  %s", attempt, s.URL),
			})
		}
	}

	move(StateTimedOut, p.cfg.MaxAttempts)
	return last, state, perr.Newf(perr.ErrorCodeTimeout,
		"The liveness authentication session %s timed out after %d attempts.", s.ID, p.cfg.MaxAttempts)
}

func waitCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
