// Package toolkit is the tool registry behind the MCP surface
//
// Tools are registered once at startup with an explicit Config and can later be
// enabled, disabled, updated or removed. Every registration and mutation fires the
// list changed listeners exactly once. Invoke dispatches by name, validates the
// arguments against the tool's input prototype and hands the handler a Call that
// carries the caller's progress token and a notification channel.
package toolkit

import (
	"context"
	"strings"

	perr "liveness/internal/platform/errors"
)

// ProgressToken is the opaque correlation handle a caller sends in _meta.progressToken
// In practice a string or a number; nil means the caller did not ask for progress
type ProgressToken = any

// Progress is one progress notification payload
type Progress struct {
	Progress float64
	Total    float64 // zero when unknown
	Message  string
}

// Handler runs a tool. ctx carries the caller's cancellation signal
type Handler func(ctx context.Context, call *Call) (*Result, error)

// Config is the optional part of a registration
type Config struct {
	Description string
	// Input is a prototype of the argument struct, e.g. ResultArgs{}. nil means the
	// tool takes no arguments and advertises an empty object schema
	Input    any
	Metadata map[string]any
	// Disabled registers the tool switched off
	Disabled bool
}

// Descriptor is the listing view of a tool
type Descriptor struct {
	Name        string
	Description string
	InputSchema []byte
	Metadata    map[string]any
	Enabled     bool
}

// Request is one invocation as seen by the registry
type Request struct {
	Name          string
	Arguments     map[string]any
	ProgressToken ProgressToken
	// Notifier delivers progress for this request; the transport sets it
	Notifier Notifier
}

// Result is what a tool hands back to the caller
type Result struct {
	Content []string
	IsError bool
}

// Text builds a successful result from one or more text blocks
func Text(parts ...string) *Result { return &Result{Content: parts} }

// ErrorResult builds an error flagged result whose only content is err's message
func ErrorResult(err error) *Result {
	if err == nil {
		return &Result{IsError: true}
	}
	return &Result{Content: []string{err.Error()}, IsError: true}
}

// String joins the text blocks with newlines
func (r *Result) String() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Content, "\n")
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return perr.InvalidArgf("tool name is required")
	}
	return nil
}
