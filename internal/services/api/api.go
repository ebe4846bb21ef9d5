// Package api composes the modules behind the MCP transports and the HTTP host
package api

import (
	"context"

	"liveness/internal/core/version"
	"liveness/internal/modkit"
	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/module"
	"liveness/internal/modkit/toolkit"
	"liveness/internal/platform/config"
	"liveness/internal/platform/logger"
	phttp "liveness/internal/platform/net/http"
	"liveness/internal/platform/net/mcphost"

	metamod "liveness/internal/services/api/meta/module"
	dom "liveness/internal/services/liveness/domain"
	livemod "liveness/internal/services/liveness/module"
)

// Instructions are sent to MCP clients in the initialize response
const Instructions = "Call startLivenessAuthentication to confirm a real person is present. " +
	"The user must open the url from the progress notification. " +
	"sampleSecretTool appears once a session passes."

// Options are the composition options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
}

// App is one tool registry, the modules on it and the MCP server over it
type App struct {
	Registry *toolkit.Registry
	Host     *mcphost.Host
	Modules  []modkit.Module
	Results  dom.ResultPort
}

// New builds the modules and registers their tools
func New(opt Options) (*App, error) {
	deps := modkit.Deps{Cfg: opt.Config, Log: *logger.Get()}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	reg := toolkit.New()

	live := livemod.New(deps)
	results := module.MustPortsOf[livemod.Ports](live).Results

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Tools: reg})),
		live,
	}
	if err := modkit.MountAll(reg, nil, mods...); err != nil {
		return nil, err
	}
	for _, m := range mods {
		// register each module under its own name for cross-module lookups
		module.Register(m)
	}

	host := mcphost.New(reg, mcphost.Options{
		Name:         version.Service,
		Version:      version.Info().Version,
		Instructions: Instructions,
	})
	return &App{Registry: reg, Host: host, Modules: mods, Results: results}, nil
}

// HTTPOptions configure the HTTP surface
type HTTPOptions struct {
	Origins []string
	// AuthToken guards everything but /healthz when set
	AuthToken      string
	BaseURL        string
	EnableProfiler bool
}

// Mount mounts the common stack, module routes and the MCP transports on r
// the returned func drains open MCP streams and must run before the server shuts down
func (a *App) Mount(r phttp.Router, o HTTPOptions) (shutdown func(context.Context) error) {
	r.Use(httpkit.CommonStack(httpkit.StackOptions{Origins: o.Origins})...)

	r.Group(func(g phttp.Router) {
		g.Use(httpkit.Auth(httpkit.StaticToken(o.AuthToken, "bearer")))

		phttp.MountProfiler(g, "/debug", o.EnableProfiler)
		_ = modkit.MountAll(nil, g, a.Modules...)
		shutdown = a.Host.Mount(g.Handle, o.BaseURL)
	})
	return shutdown
}

// Close detaches the MCP server from the registry
func (a *App) Close() { a.Host.Close() }
