package httpkit

import (
	"net/http"

	phttp "liveness/internal/platform/net/http"
)

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON mounts a JSON body handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// Text registers a handler that answers with a plain text body
func Text(r Router, path, body string) {
	r.Get(path, func(w http.ResponseWriter, _ *http.Request) { phttp.Text(w, body) })
}
