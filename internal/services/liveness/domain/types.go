// Package domain defines the liveness session types and the ports the module exposes
package domain

import "strings"

// Mode selects between a plain liveness check and a check against a reference image
type Mode int

const (
	// ModePlain runs liveness only
	ModePlain Mode = iota
	// ModeVerify also matches the live face against a reference image
	ModeVerify
)

// String names the mode
func (m Mode) String() string {
	if m == ModeVerify {
		return "CheckWithReferenceMatch"
	}
	return "PlainCheck"
}

// PathSegment is the remote API operation the mode maps to
func (m Mode) PathSegment() string {
	if m == ModeVerify {
		return "detectLivenessWithVerify"
	}
	return "detectLiveness"
}

// StatusSucceeded is the only terminal remote status
const StatusSucceeded = "Succeeded"

// Session is a created remote session and the link a human must open
type Session struct {
	ID            string
	Mode          Mode
	URL           string
	CorrelationID string
}

// Decision is the remote liveness verdict
type Decision int

const (
	DecisionAbsent Decision = iota
	DecisionReal
	DecisionSpoof
	DecisionUnknown
)

// ParseDecision maps the remote decision string
func ParseDecision(s string) Decision {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DecisionAbsent
	case "realface", "real":
		return DecisionReal
	case "spoofface", "spoof":
		return DecisionSpoof
	default:
		return DecisionUnknown
	}
}

// String names the decision
func (d Decision) String() string {
	switch d {
	case DecisionReal:
		return "real"
	case DecisionSpoof:
		return "spoof"
	case DecisionUnknown:
		return "unknown"
	default:
		return "absent"
	}
}

// Outcome is one observation of a session
// Liveness, Match and ImageRef only mean something once Status is StatusSucceeded
type Outcome struct {
	SessionID string
	Status    string
	Liveness  Decision
	Match     *bool // nil when absent; always nil in plain mode
	ImageRef  string
	ImagePath string
}

// Succeeded reports whether the session reached its terminal status
func (o Outcome) Succeeded() bool { return o.Status == StatusSucceeded }

// Verdict is the interpreted outcome shown to the caller
type Verdict struct {
	Pass bool
	Text string
}
