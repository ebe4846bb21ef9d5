package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "liveness/internal/platform/errors"
	phttp "liveness/internal/platform/net/http"
	dom "liveness/internal/services/liveness/domain"

	"github.com/go-chi/chi/v5"
)

type fakeResults struct {
	v   dom.Verdict
	o   dom.Outcome
	err error
	got string
}

func (f *fakeResults) Result(_ context.Context, id string) (dom.Verdict, dom.Outcome, error) {
	f.got = id
	return f.v, f.o, f.err
}

func serve(p dom.ResultPort, path string) *httptest.ResponseRecorder {
	mux := chi.NewMux()
	phttp.AdaptChi(mux).Route("/sessions", func(r phttp.Router) { Register(r, p) })
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec
}

func TestResult_OK(t *testing.T) {
	match := true
	f := &fakeResults{
		v: dom.Verdict{Pass: true, Text: "abc is a real person."},
		o: dom.Outcome{SessionID: "abc", Status: dom.StatusSucceeded, Liveness: dom.DecisionReal, Match: &match},
	}
	rec := serve(f, "/sessions/abc/result")
	if rec.Code != stdhttp.StatusOK || f.got != "abc" {
		t.Fatalf("code=%d got=%q", rec.Code, f.got)
	}
	var env struct {
		Data ResultResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Data.Pass || env.Data.Liveness != "real" || env.Data.Match == nil || !*env.Data.Match {
		t.Fatalf("data = %+v", env.Data)
	}
}

func TestResult_PendingHasNoLiveness(t *testing.T) {
	r := ToResponse(dom.Verdict{Text: "pending"}, dom.Outcome{SessionID: "x", Status: "Started", Liveness: dom.DecisionReal})
	if r.Liveness != "" || r.Pass {
		t.Fatalf("response = %+v", r)
	}
}

func TestResult_ErrorEnvelope(t *testing.T) {
	f := &fakeResults{err: perr.Unavailablef("face api down")}
	rec := serve(f, "/sessions/abc/result")
	if rec.Code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("code = %d", rec.Code)
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Code != perr.ErrorCodeUnavailable || env.Error == "" {
		t.Fatalf("envelope = %+v", env)
	}
}
