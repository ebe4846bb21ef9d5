package middleware

import (
	"net/http"

	pnet "liveness/internal/platform/net"
)

// AuthPort resolves the calling client from a request
type AuthPort interface {
	// Parse returns a client name or an error
	Parse(r *http.Request) (client string, err error)
}

// Auth rejects requests the port cannot resolve, a nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			client, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithClient(r.Context(), client)))
		})
	}
}
