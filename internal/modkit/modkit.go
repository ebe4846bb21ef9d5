package modkit

import (
	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/toolkit"
)

// Module is the common surface for modules that expose tools, routes and ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountTools registers the module's tools on the shared registry
	MountTools(reg *toolkit.Registry) error
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r httpkit.Router)
	// Ports returns a module specific port set interface for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module and may delegate to this pattern
type Builder func(Deps, ...Option) Module

// MountAll mounts tools then routes for every module in order
func MountAll(reg *toolkit.Registry, r httpkit.Router, mods ...Module) error {
	for _, m := range mods {
		if reg != nil {
			if err := m.MountTools(reg); err != nil {
				return err
			}
		}
		if r != nil {
			m.MountRoutes(r)
		}
	}
	return nil
}
