package module

import dom "liveness/internal/services/liveness/domain"

// Ports is what the liveness module offers other modules and the CLI
type Ports struct {
	Results dom.ResultPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Results: m.svc} }
