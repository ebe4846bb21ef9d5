package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "liveness/internal/platform/errors"
)

// TokenFunc checks a bearer token and returns the client name
type TokenFunc func(token string) (client string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// StaticToken accepts exactly one shared secret, an empty secret yields a nil Port
func StaticToken(secret, client string) *Port {
	if secret == "" {
		return nil
	}
	return NewPortFunc(func(tok string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(tok), []byte(secret)) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		return client, nil
	})
}

// Parse extracts the client from an Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the parser returns an error
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	client, err := p.parse(raw)
	if err != nil {
		return "", perr.Unauthorizedf("invalid bearer token")
	}
	return client, nil
}
