// Package http provides http transport for liveness sessions
package http

import (
	stdhttp "net/http"

	"liveness/internal/modkit/httpkit"
	dom "liveness/internal/services/liveness/domain"
)

// Register mounts the session routes
func Register(r httpkit.Router, p dom.ResultPort) {
	h := &handlers{results: p}
	httpkit.Get(r, "/{sessionID}/result", h.result)
}

type handlers struct{ results dom.ResultPort }

// ResultResponse is one interpreted observation of a session
type ResultResponse struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
	Pass      bool   `json:"pass"`
	Liveness  string `json:"liveness,omitempty"`
	Match     *bool  `json:"match,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
	Text      string `json:"text"`
}

// ToResponse flattens a verdict and the outcome behind it
func ToResponse(v dom.Verdict, o dom.Outcome) ResultResponse {
	out := ResultResponse{
		SessionID: o.SessionID,
		Status:    o.Status,
		Pass:      v.Pass,
		Match:     o.Match,
		ImagePath: o.ImagePath,
		Text:      v.Text,
	}
	if o.Succeeded() {
		out.Liveness = o.Liveness.String()
	}
	return out
}

// GET /sessions/{sessionID}/result
func (h *handlers) result(r *stdhttp.Request) (any, error) {
	v, o, err := h.results.Result(r.Context(), httpkit.Param(r, "sessionID"))
	if err != nil {
		return nil, err
	}
	return ToResponse(v, o), nil
}
