// Package version provides information about the build version of the service.
package version

import (
	"fmt"
	"runtime/debug"
)

// Service is the name reported to MCP clients and in logs
const Service = "liveness-mcp"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String renders the one line form printed by the version command
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags; go install builds fall
// back to the module version.
func Info() BuildInfo {
	// -ldflags "-X 'liveness/internal/core/version.version=v0.1.0'
	// -X 'liveness/internal/core/version.commit=abcd' -X 'liveness/internal/core/version.date=2026-10-01'"
	v := version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return BuildInfo{
		Service: Service,
		Version: v,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
