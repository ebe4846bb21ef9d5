// Package modkit provides module wiring and core deps
package modkit

import (
	"liveness/internal/platform/config"
	"liveness/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// a zero Log discards; modules take it as their base logger
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
}
