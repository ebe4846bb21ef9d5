package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChi_RootGroupRouteAndMux(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)

	r.Use(func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set("X-Root", "1")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/root", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte("root")) })

	r.Group(func(gr Router) {
		gr.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Set("X-Group", "1")
				next.ServeHTTP(w, req)
			})
		})
		if gr.Mux() == nil {
			t.Fatalf("group Mux() returned nil")
		}
		gr.Post("/g/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusAccepted) })
	})

	r.Route("/sessions", func(sr Router) {
		sr.Get("/{sessionID}/result", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			_, _ = w.Write([]byte(URLParam(req, "sessionID")))
		})
		sr.Delete("/{sessionID}", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusNoContent) })
	})

	r.Handle("/mcp", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		_, _ = w.Write([]byte("mcp:" + req.Method))
	}))

	cases := []struct {
		method, path string
		code         int
		body         string
		header       string
	}{
		{"GET", "/root", 200, "root", ""},
		{"POST", "/g/ping", 202, "", "X-Group"},
		{"GET", "/sessions/abc/result", 200, "abc", ""},
		{"DELETE", "/sessions/abc", 204, "", ""},
		{"GET", "/mcp", 200, "mcp:GET", ""},
		{"POST", "/mcp", 200, "mcp:POST", ""},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.code {
			t.Fatalf("%s %s: code %d want %d", tc.method, tc.path, rec.Code, tc.code)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Fatalf("%s %s: body %q want %q", tc.method, tc.path, rec.Body.String(), tc.body)
		}
		if rec.Header().Get("X-Root") != "1" {
			t.Fatalf("%s %s: root middleware did not run", tc.method, tc.path)
		}
		if tc.header != "" && rec.Header().Get(tc.header) != "1" {
			t.Fatalf("%s %s: missing %s", tc.method, tc.path, tc.header)
		}
	}
}
