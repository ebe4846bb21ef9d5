// Package service implements liveness session orchestration and the tool handlers
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"liveness/internal/adapters/faceapi"
	"liveness/internal/adapters/imagestore"
	"liveness/internal/platform/logger"
	dom "liveness/internal/services/liveness/domain"

	"github.com/google/uuid"
)

// Config controls the service
type Config struct {
	Endpoint        string
	Key             string
	Website         string
	ImageDir        string
	VerifyImageFile string

	Timeout    time.Duration
	MaxRetries int

	Poll PollConfig
}

// Mode is verify when a reference image is configured
func (c Config) Mode() dom.Mode {
	if strings.TrimSpace(c.VerifyImageFile) != "" {
		return dom.ModeVerify
	}
	return dom.ModePlain
}

// Svc runs liveness sessions end to end
type Svc struct {
	cfg    Config
	mode   dom.Mode
	client dom.SessionPort
	poller *Poller
	log    *logger.Logger
	newID  func() string

	mu     sync.Mutex
	onPass []func(ctx context.Context, v dom.Verdict)
}

var _ dom.ResultPort = (*Svc)(nil)

// New constructs the service over the Face API
func New(cfg Config) *Svc {
	api := faceapi.NewClient(faceapi.Options{
		Endpoint:   cfg.Endpoint,
		Key:        cfg.Key,
		Website:    cfg.Website,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	})
	return newSvc(cfg, NewSessionClient(api, imagestore.New(cfg.ImageDir)))
}

func newSvc(cfg Config, client dom.SessionPort) *Svc {
	return &Svc{
		cfg:    cfg,
		mode:   cfg.Mode(),
		client: client,
		poller: NewPoller(client.SessionStatus, cfg.Poll),
		log:    logger.Named("liveness"),
		newID:  func() string { return uuid.New().String() },
	}
}

// Mode returns the session flavour this process runs
func (s *Svc) Mode() dom.Mode { return s.mode }

// OnPass registers fn to run after a session passes
func (s *Svc) OnPass(fn func(ctx context.Context, v dom.Verdict)) {
	s.mu.Lock()
	s.onPass = append(s.onPass, fn)
	s.mu.Unlock()
}

func (s *Svc) passed(ctx context.Context, v dom.Verdict) {
	s.mu.Lock()
	fns := append([]func(context.Context, dom.Verdict){}, s.onPass...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ctx, v)
	}
}
