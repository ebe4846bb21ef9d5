package toolkit

import (
	"context"
	"reflect"

	perr "liveness/internal/platform/errors"
	"liveness/internal/platform/logger"
)

// Notifier delivers progress notifications back to the caller of one request
type Notifier interface {
	NotifyProgress(ctx context.Context, token ProgressToken, p Progress) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, token ProgressToken, p Progress) error

// NotifyProgress calls f
func (f NotifierFunc) NotifyProgress(ctx context.Context, token ProgressToken, p Progress) error {
	return f(ctx, token, p)
}

// Call is the per invocation view a handler works with
type Call struct {
	tool     string
	token    ProgressToken
	input    any
	args     map[string]any
	notifier Notifier
	log      *logger.Logger
}

// Tool returns the invoked tool name
func (c *Call) Tool() string { return c.tool }

// Token returns the caller's progress token, nil when absent
func (c *Call) Token() ProgressToken { return c.token }

// HasToken reports whether the caller asked for progress
func (c *Call) HasToken() bool { return c.token != nil }

// Input returns a pointer to the validated argument struct, nil for tools without input
func (c *Call) Input() any { return c.input }

// Arguments returns the raw arguments as sent
func (c *Call) Arguments() map[string]any { return c.args }

// Log returns the call scoped logger
func (c *Call) Log() *logger.Logger { return c.log }

// Notify sends one progress notification and reports delivery errors
func (c *Call) Notify(ctx context.Context, p Progress) error {
	if c.token == nil {
		return perr.InvalidArgf("tool %s: caller sent no progress token", c.tool)
	}
	if c.notifier == nil {
		return perr.Unavailablef("tool %s: no notification channel", c.tool)
	}
	return c.notifier.NotifyProgress(ctx, c.token, p)
}

// Delivery yields the outcome of a best effort send once it completes
// It is buffered so the sender never blocks; callers that don't care discard it
type Delivery <-chan error

// TrySend delivers p in the background. Failures are logged and never reach the caller
// unless it reads the returned Delivery
func (c *Call) TrySend(ctx context.Context, p Progress) Delivery {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		err := c.Notify(ctx, p)
		if err != nil {
			c.log.Warn().Err(err).Float64("progress", p.Progress).Msg("progress notification dropped")
		}
		ch <- err
	}()
	return ch
}

// Typed adapts a handler over a concrete argument struct
func Typed[T any](fn func(ctx context.Context, call *Call, in T) (*Result, error)) Handler {
	return func(ctx context.Context, call *Call) (*Result, error) {
		in, ok := call.Input().(*T)
		if !ok {
			return nil, perr.Internalf("tool %s: input is %T, want *%s", call.Tool(), call.Input(), reflect.TypeFor[T]())
		}
		return fn(ctx, call, *in)
	}
}
