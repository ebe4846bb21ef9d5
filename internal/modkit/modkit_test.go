package modkit

import (
	"context"
	"errors"
	"testing"

	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/toolkit"
)

// stub module that satisfies Module and records calls
type stub struct {
	name    string
	tools   int
	mounted int
	ports   any
	failOn  bool
}

func (s *stub) MountTools(reg *toolkit.Registry) error {
	s.tools++
	if s.failOn {
		return errors.New("register failed")
	}
	_, err := reg.Register(s.name+"Tool", toolkit.Config{}, func(context.Context, *toolkit.Call) (*toolkit.Result, error) {
		return toolkit.Text(s.name), nil
	})
	return err
}
func (s *stub) MountRoutes(httpkit.Router) { s.mounted++ }
func (s *stub) Ports() any                 { return s.ports }
func (s *stub) Name() string               { return s.name }

var _ Module = (*stub)(nil)

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, opts ...Option) Module {
		built := Build(opts...)
		return &stub{name: built.Name, ports: built.Ports}
	}

	m := b(Deps{}, WithName("meta"), WithPorts("ok"))
	if m.Name() != "meta" || m.Ports() != "ok" {
		t.Fatalf("built module = %s %v", m.Name(), m.Ports())
	}
}

func TestMountAll(t *testing.T) {
	t.Parallel()

	reg := toolkit.New()
	a, b := &stub{name: "a"}, &stub{name: "b"}
	var r httpkit.Router = nil
	if err := MountAll(reg, r, a, b); err != nil {
		t.Fatal(err)
	}
	// a nil router skips routes
	if a.tools != 1 || b.tools != 1 || a.mounted != 0 {
		t.Fatalf("a=%+v b=%+v", a, b)
	}
	if got := len(reg.List()); got != 2 {
		t.Fatalf("registered %d tools", got)
	}

	bad := &stub{name: "bad", failOn: true}
	after := &stub{name: "after"}
	if err := MountAll(reg, nil, bad, after); err == nil || after.tools != 0 {
		t.Fatalf("MountAll should stop on the first failure: %v %+v", err, after)
	}
}
