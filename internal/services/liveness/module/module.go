// Package module wires the liveness service into the tool registry and the HTTP host using modkit
package module

import (
	"context"
	"net/http"
	"sync"

	modkit "liveness/internal/modkit"
	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/toolkit"
	"liveness/internal/platform/logger"

	dom "liveness/internal/services/liveness/domain"
	lhttp "liveness/internal/services/liveness/http"
	"liveness/internal/services/liveness/service"
)

// Module implements the liveness module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)

	opts Options
	svc  *service.Svc
	log  logger.Logger
}

// New constructs the liveness module from process config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions constructs the module from explicit options
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("liveness"),
		modkit.WithPrefix("/sessions"),
	}, opts...)...)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		opts:   o,
		svc:    service.New(o.Service),
		log:    deps.Log.With().Str("module", b.Name).Logger(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		lhttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountTools registers the liveness tools and, when gated, the sample secret tool
func (m *Module) MountTools(reg *toolkit.Registry) error {
	if _, err := reg.Register(service.ToolStart, toolkit.Config{
		Description: service.StartDescription(m.svc.Mode()),
	}, m.svc.StartLiveness); err != nil {
		return err
	}
	if _, err := reg.Register(service.ToolResult, toolkit.Config{
		Description: service.ResultDescription,
		Input:       service.ResultArgs{},
	}, toolkit.Typed(m.svc.LivenessResult)); err != nil {
		return err
	}
	if !m.opts.GateSecretTool {
		return nil
	}

	secret, err := reg.Register(service.ToolSecret, toolkit.Config{
		Description: service.SecretDescription,
		Metadata:    map[string]any{"gatedBy": service.ToolStart},
		Disabled:    true,
	}, m.svc.Secret)
	if err != nil {
		return err
	}

	// unlock once per process; later passes leave the list untouched
	var unlock sync.Once
	m.svc.OnPass(func(context.Context, dom.Verdict) {
		unlock.Do(func() {
			l := m.log.With().Str("tool", service.ToolSecret).Logger()
			if err := secret.Enable(); err != nil {
				l.Warn().Err(err).Msg("unlock failed")
				return
			}
			l.Info().Msg("tool unlocked by liveness pass")
		})
	})
	return nil
}

// MountRoutes mounts the session routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Service exposes the underlying service for the CLI
func (m *Module) Service() *service.Svc { return m.svc }
