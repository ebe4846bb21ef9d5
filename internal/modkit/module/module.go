// Package module defines the minimal contract for a modkit module
package module

import (
	"liveness/internal/modkit/httpkit"
	"liveness/internal/modkit/toolkit"
)

// Module defines the minimal contract used by modkit
// keep this sibling to avoid import knots when a module also exports its own ports type
type Module interface {
	MountTools(reg *toolkit.Registry) error
	MountRoutes(r httpkit.Router)
	Ports() any
	Name() string
}
