package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"liveness/internal/modkit/module"
	"liveness/internal/platform/config"
	phttp "liveness/internal/platform/net/http"
	kit "liveness/internal/platform/testkit"
	"liveness/internal/services/liveness/service"

	"github.com/go-chi/chi/v5"
)

func newApp(t *testing.T) *App {
	t.Helper()
	kit.Serial(t)
	module.Reset()
	t.Cleanup(module.Reset)
	kit.Env(t, "LIVENESS_GATE_SECRET_TOOL", "true", "VERIFY_IMAGE_FILE_NAME", "", "HTTP_AUTH_TOKEN", "")

	a, err := New(Options{Config: config.New()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)
	return a
}

func serve(t *testing.T, a *App, o HTTPOptions) http.Handler {
	t.Helper()
	mux := chi.NewMux()
	shutdown := a.Mount(phttp.AdaptChi(mux), o)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return mux
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew_RegistersToolsAndModules(t *testing.T) {
	a := newApp(t)
	if got := module.Names(); len(got) != 2 || got[0] != "liveness" || got[1] != "meta" {
		t.Fatalf("modules = %v", got)
	}
	if len(a.Registry.List()) != 2 || a.Registry.Enabled(service.ToolSecret) {
		t.Fatalf("tools = %+v", a.Registry.All())
	}
	if _, ok := a.Registry.Lookup(service.ToolSecret); !ok {
		t.Fatal("gated tool not registered")
	}
	if a.Results == nil {
		t.Fatal("no result port")
	}
}

func TestMount_Routes(t *testing.T) {
	h := serve(t, newApp(t), HTTPOptions{BaseURL: "http://localhost:3000"})

	if rec := get(h, "/", ""); rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "Hello World!") {
		t.Fatalf("root: %d %q", rec.Code, rec.Body)
	}
	if rec := get(h, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	rec := get(h, "/tools", "")
	kit.MustContain(t, rec.Body.String(), service.ToolStart)
	if strings.Contains(rec.Body.String(), service.ToolSecret) {
		t.Fatal("locked tool listed")
	}
	if rec := get(h, "/debug/pprof/", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("profiler mounted while off: %d", rec.Code)
	}
	kit.MustContain(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestMount_StreamableInitialize(t *testing.T) {
	h := serve(t, newApp(t), HTTPOptions{})
	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"t","version":"1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("initialize: %d %s", rec.Code, rec.Body)
	}
	var out struct {
		Result struct {
			ServerInfo struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
			Instructions string `json:"instructions"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body, err)
	}
	if out.Result.ServerInfo.Name != "liveness-mcp" || out.Result.Instructions != Instructions {
		t.Fatalf("initialize = %+v", out.Result)
	}
}

func TestMount_AuthToken(t *testing.T) {
	h := serve(t, newApp(t), HTTPOptions{AuthToken: "s3cret", EnableProfiler: true})

	if rec := get(h, "/tools", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}
	if rec := get(h, "/tools", "wrong"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rec.Code)
	}
	if rec := get(h, "/tools", "s3cret"); rec.Code != http.StatusOK {
		t.Fatalf("good token: %d", rec.Code)
	}
	if rec := get(h, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz must stay open: %d", rec.Code)
	}
	if rec := get(h, "/debug/pprof/", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("profiler without token: %d", rec.Code)
	}
}

func TestMount_ProfilerBehindCommonStack(t *testing.T) {
	h := serve(t, newApp(t), HTTPOptions{EnableProfiler: true})
	for path, code := range map[string]int{
		"/debug/pprof/":        http.StatusOK,
		"/debug/pprof/cmdline": http.StatusOK,
		"/debug":               http.StatusMovedPermanently,
	} {
		if rec := get(h, path, ""); rec.Code != code {
			t.Fatalf("%s: %d, want %d", path, rec.Code, code)
		}
	}
	kit.MustContain(t, get(h, "/debug/pprof/", "").Body.String(), "goroutine")
}

func TestMount_ProfilerOff(t *testing.T) {
	h := serve(t, newApp(t), HTTPOptions{})
	if rec := get(h, "/debug/pprof/", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("profiler off: %d", rec.Code)
	}
}
