package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"liveness/internal/adapters/faceapi"
	"liveness/internal/adapters/imagestore"
	"liveness/internal/modkit/toolkit"
)

// fakeFace is an in-process Face API plus liveness website
type fakeFace struct {
	mu sync.Mutex

	// statuses are served in order; the last one repeats
	statuses    []string
	decision    string
	match       *bool
	imageID     string
	image       []byte
	imageStatus int

	createStatus int
	noToken      bool
	shortURL     string
	shortStatus  int

	statusCalls  int
	createCalls  int
	correlations []string
	verifyImage  string
	onStatus     func(n int)
}

func newFakeFace() *fakeFace {
	return &fakeFace{
		statuses: []string{"Succeeded"},
		decision: "realface",
		shortURL: "/s/abc123",
	}
}

func (f *fakeFace) serve(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /face/v1.2/{op}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.createCalls++
		status, noToken := f.createStatus, f.noToken
		f.mu.Unlock()

		corr := ""
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				corr = r.FormValue("deviceCorrelationId")
				if file, hdr, err := r.FormFile("VerifyImage"); err == nil {
					_ = file.Close()
					f.mu.Lock()
					f.verifyImage = hdr.Filename
					f.mu.Unlock()
				}
			}
		} else {
			var body faceapi.CreateSessionRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			corr = body.DeviceCorrelationID
		}
		f.mu.Lock()
		f.correlations = append(f.correlations, corr)
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}
		out := map[string]any{"sessionId": "sess-1"}
		if !noToken {
			out["authToken"] = "auth-token"
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("POST /api/s", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		status, url := f.shortStatus, f.shortURL
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer auth-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
	})

	mux.HandleFunc("GET /face/v1.2/{op}/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.statusCalls++
		n := f.statusCalls
		idx := min(n-1, len(f.statuses)-1)
		st := f.statuses[idx]
		hook := f.onStatus
		doc := map[string]any{"sessionId": r.PathValue("id"), "status": st}
		if st == "Succeeded" {
			res := map[string]any{"livenessDecision": f.decision, "sessionImageId": f.imageID}
			if f.match != nil {
				res["verifyResult"] = map[string]any{"matchConfidence": 0.9, "isIdentical": *f.match}
			}
			doc["results"] = map[string]any{"attempts": []any{map[string]any{"attemptId": 1, "result": res}}}
		}
		f.mu.Unlock()

		if hook != nil {
			hook(n)
		}
		// "!<code>" answers with that status
		if code, ok := strings.CutPrefix(st, "!"); ok {
			n, _ := strconv.Atoi(code)
			w.WriteHeader(n)
			return
		}
		_ = json.NewEncoder(w).Encode(doc)
	})

	mux.HandleFunc("GET /face/v1.2/sessionImages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		f.mu.Lock()
		status, img := f.imageStatus, f.image
		f.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(img)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeFace) calls() (create, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.statusCalls
}

func testAPI(srv *httptest.Server) *faceapi.Client {
	return faceapi.NewClient(faceapi.Options{Endpoint: srv.URL, Key: "k3y", Website: srv.URL, MaxRetries: -1})
}

func testSessionClient(srv *httptest.Server, dir string) *SessionClient {
	return NewSessionClient(testAPI(srv), imagestore.New(dir))
}

// progressLog records progress in delivery order; TrySend records synchronously
type progressLog struct {
	mu      sync.Mutex
	sent    []toolkit.Progress
	tried   []toolkit.Progress
	failOne error
	failTry error
	before  func()
}

func (p *progressLog) Notify(_ context.Context, pr toolkit.Progress) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.before != nil {
		p.before()
	}
	p.sent = append(p.sent, pr)
	return p.failOne
}

func (p *progressLog) TrySend(_ context.Context, pr toolkit.Progress) toolkit.Delivery {
	p.mu.Lock()
	p.tried = append(p.tried, pr)
	err := p.failTry
	p.mu.Unlock()
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}

func (p *progressLog) counts() (sent, tried int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sent), len(p.tried)
}

func (f *fakeFace) seen() (correlations []string, verifyImage string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.correlations...), f.verifyImage
}
