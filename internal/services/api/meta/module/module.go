// Package module wires meta endpoints into the HTTP host using a tiny module
package module

import (
	"net/http"
	"time"

	"liveness/internal/core/version"
	modkit "liveness/internal/modkit"
	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/module"
	"liveness/internal/modkit/toolkit"
	str "liveness/internal/platform/strings"

	metahttp "liveness/internal/services/api/meta/http"
)

// Ports are injected by the host
type Ports struct {
	Tools *toolkit.Registry
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	startedAt time.Time
}

var _ modkit.Module = (*Module)(nil)

// New constructs a meta module with the provided dependencies and options
// the registry arrives through modkit.WithPorts(Ports{...}); without it /tools is not mounted
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			Tools:       injected.Tools,
			Modules:     module.Names,
		})
		external(r)
	}
	return m
}

// MountTools implements the modkit.Module interface; meta has no tools
func (m *Module) MountTools(*toolkit.Registry) error { return nil }

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix returns the route prefix, the root when unset
func (m *Module) Prefix() string { return str.Prefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
