package modkit

import (
	"net/http"
	"reflect"
	"testing"

	"liveness/internal/modkit/httpkit"
	kit "liveness/internal/platform/testkit"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("defaults = %+v", b)
	}
	var r httpkit.Router
	kit.MustNotPanic(t, func() { b.Register(r) })
}

func TestBuild_WithOptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr {
		return reflect.ValueOf(f).Pointer()
	}
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return http.StripPrefix("/x", next) }

	regCalled := 0
	type ports struct{ X int }

	b := Build(
		WithName("liveness"),
		WithPrefix("/sessions"),
		WithMiddlewares(mwA),
		WithMiddlewares(mwB),
		WithPorts(ports{X: 7}),
		WithRegister(func(httpkit.Router) { regCalled++ }),
	)

	if b.Name != "liveness" || b.Prefix != "/sessions" {
		t.Fatalf("name/prefix = %q %q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 2 || fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("middlewares not kept in order")
	}
	if p, ok := b.Ports.(ports); !ok || p.X != 7 {
		t.Fatalf("ports = %#v", b.Ports)
	}
	b.Register(nil)
	if regCalled != 1 {
		t.Fatalf("register called %d times", regCalled)
	}

	// the built slice is a copy
	b.Mw[0] = mwB
	again := Build(WithMiddlewares(mwA))
	if fnPtr(again.Mw[0]) != fnPtr(mwA) {
		t.Fatal("Build should not share middleware storage")
	}
}
