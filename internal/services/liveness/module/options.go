package module

import (
	"time"

	"liveness/internal/platform/config"
	"liveness/internal/services/liveness/service"
)

// Options controls the liveness service and the gated sample tool
type Options struct {
	Service service.Config

	// GateSecretTool registers sampleSecretTool switched off until a session passes
	GateSecretTool bool
}

// FromConfig reads FACEAPI_* and LIVENESS_* values from process config/env
// required Face API settings are not checked here, the start tool reports them when invoked
func FromConfig(cfg config.Conf) Options {
	fc := cfg.Prefix("FACEAPI_")
	lc := cfg.Prefix("LIVENESS_")

	// 0 reads as "no retries" in env, the client treats 0 as its default
	retries := fc.MayInt("MAX_RETRIES", 3)
	if retries == 0 {
		retries = -1
	}

	return Options{
		Service: service.Config{
			Endpoint:        fc.MayString("ENDPOINT", ""),
			Key:             fc.MayString("KEY", ""),
			Website:         fc.MayString("WEBSITE", ""),
			Timeout:         fc.MayDuration("TIMEOUT", 15*time.Second),
			MaxRetries:      retries,
			ImageDir:        cfg.MayPath("SESSION_IMAGE_DIR", ""),
			VerifyImageFile: cfg.MayPath("VERIFY_IMAGE_FILE_NAME", ""),
			Poll: service.PollConfig{
				Interval:    lc.MayDuration("POLL_INTERVAL", time.Second),
				MaxAttempts: lc.MayPositiveInt("POLL_MAX_ATTEMPTS", 600),
				ReportEvery: lc.MayPositiveInt("PROGRESS_EVERY", 30),
			},
		},
		GateSecretTool: lc.MayBool("GATE_SECRET_TOOL", true),
	}
}
